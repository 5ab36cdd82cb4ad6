package dagconfig

// Blocks whose previous hash is the genesis hash start a chain. The genesis
// hashes are the SHA-256 digests of "witnet <network> genesis".

var mainnetGenesisHash = newHashFromStr("a1c60bd46fd782d818f500a12cfc7e1695b433d2c9eb0d254acd0a8c338f01b0")

var testnetGenesisHash = newHashFromStr("b21200b5b4d7f1307bf9f23526865ff106e1ea2d44456c8a376d89e020cb8604")

var devnetGenesisHash = newHashFromStr("e743e7f165d912be776a2602b198758fc4ff65bb75c451525bf5e75d3ea8182d")
