package app

import (
	"os"
	"testing"
)

func TestDatabaseVersion(t *testing.T) {
	dbPath := t.TempDir()

	exists, err := checkDatabaseVersion(dbPath)
	if err != nil {
		t.Fatalf("checkDatabaseVersion: %+v", err)
	}
	if exists {
		t.Fatalf("checkDatabaseVersion: no version file was created yet")
	}

	err = createDatabaseVersionFile(dbPath)
	if err != nil {
		t.Fatalf("createDatabaseVersionFile: %+v", err)
	}
	exists, err = checkDatabaseVersion(dbPath)
	if err != nil || !exists {
		t.Fatalf("checkDatabaseVersion: expected a valid version file, got %t, %v", exists, err)
	}

	err = os.WriteFile(versionFilePath(dbPath), []byte("2"), 0600)
	if err != nil {
		t.Fatalf("WriteFile: %s", err)
	}
	_, err = checkDatabaseVersion(dbPath)
	if err == nil {
		t.Fatalf("checkDatabaseVersion: expected an error for an unknown version")
	}
}
