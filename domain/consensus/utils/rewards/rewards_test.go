package rewards

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/ruleerrors"
)

func TestBlockReward(t *testing.T) {
	tests := []struct {
		epoch          externalapi.Epoch
		expectedReward uint64
	}{
		{epoch: 0, expectedReward: 50_000_000_000},
		{epoch: 1_749_999, expectedReward: 50_000_000_000},
		{epoch: 1_750_000, expectedReward: 25_000_000_000},
		{epoch: 1_750_000 * 2, expectedReward: 12_500_000_000},
		{epoch: 1_750_000 * 35, expectedReward: 1},
		{epoch: 1_750_000 * 36, expectedReward: 0},
		{epoch: 1_750_000 * 100, expectedReward: 0},
		{epoch: ^externalapi.Epoch(0), expectedReward: 0},
	}

	for _, test := range tests {
		reward := BlockReward(test.epoch)
		if reward != test.expectedReward {
			t.Fatalf("BlockReward: epoch %d: expected %d, got %d", test.epoch, test.expectedReward, reward)
		}
	}
}

func TestDataRequestRewards(t *testing.T) {
	dataRequest := &externalapi.DataRequestOutput{
		Value:     1000,
		Witnesses: 5,
		CommitFee: 10,
		RevealFee: 20,
		TallyFee:  30,
	}

	commitReward, err := CommitReward(dataRequest)
	if err != nil {
		t.Fatalf("CommitReward: %s", err)
	}
	if commitReward != 190 {
		t.Fatalf("CommitReward: expected 190, got %d", commitReward)
	}

	revealReward, err := RevealReward(dataRequest)
	if err != nil {
		t.Fatalf("RevealReward: %s", err)
	}
	if revealReward != 170 {
		t.Fatalf("RevealReward: expected 170, got %d", revealReward)
	}

	valueTransferReward, err := ValueTransferReward(dataRequest)
	if err != nil {
		t.Fatalf("ValueTransferReward: %s", err)
	}
	if valueTransferReward != 140 {
		t.Fatalf("ValueTransferReward: expected 140, got %d", valueTransferReward)
	}

	tallyChange, err := TallyChange(dataRequest, 3)
	if err != nil {
		t.Fatalf("TallyChange: %s", err)
	}
	if tallyChange != revealReward*2 {
		t.Fatalf("TallyChange: expected %d, got %d", revealReward*2, tallyChange)
	}

	tallyChange, err = TallyChange(dataRequest, 5)
	if err != nil {
		t.Fatalf("TallyChange: %s", err)
	}
	if tallyChange != 0 {
		t.Fatalf("TallyChange: expected no change when every witness revealed, got %d", tallyChange)
	}
}

func TestDataRequestRewardErrors(t *testing.T) {
	tests := []struct {
		name          string
		dataRequest   *externalapi.DataRequestOutput
		reveals       uint16
		expectedError error
	}{
		{
			name:          "zero witnesses",
			dataRequest:   &externalapi.DataRequestOutput{Value: 1000},
			expectedError: ruleerrors.ErrZeroWitnesses,
		},
		{
			name:          "commit fee exceeds the value per witness",
			dataRequest:   &externalapi.DataRequestOutput{Value: 100, Witnesses: 2, CommitFee: 51},
			expectedError: ruleerrors.ErrRewardUnderflow,
		},
		{
			name:          "reveal fee exceeds the commit reward",
			dataRequest:   &externalapi.DataRequestOutput{Value: 100, Witnesses: 2, CommitFee: 40, RevealFee: 11},
			expectedError: ruleerrors.ErrRewardUnderflow,
		},
		{
			name:          "more reveals than witnesses",
			dataRequest:   &externalapi.DataRequestOutput{Value: 100, Witnesses: 2},
			reveals:       3,
			expectedError: ruleerrors.ErrRewardUnderflow,
		},
	}

	for _, test := range tests {
		_, err := TallyChange(test.dataRequest, test.reveals)
		if !errors.Is(err, test.expectedError) {
			t.Fatalf("TallyChange: %s: expected %v, got %v", test.name, test.expectedError, err)
		}
	}

	_, err := ValueTransferReward(&externalapi.DataRequestOutput{Value: 100, Witnesses: 1, TallyFee: 101})
	if !errors.Is(err, ruleerrors.ErrRewardUnderflow) {
		t.Fatalf("ValueTransferReward: expected ErrRewardUnderflow, got %v", err)
	}
}
