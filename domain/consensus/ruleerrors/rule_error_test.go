package ruleerrors

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
)

func TestNewErrOutputNotFound(t *testing.T) {
	transactionID := externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{255, 255, 255})
	outer := NewErrOutputNotFound(externalapi.NewOutputPointer(transactionID, 5))
	expectedOuterErr := "ErrOutputNotFound: missing the following output: " +
		"ffffff0000000000000000000000000000000000000000000000000000000000:5"

	inner := &ErrMissingOutput{}
	if !errors.As(outer, inner) {
		t.Fatal("TestNewErrOutputNotFound: Outer should contain ErrMissingOutput in it")
	}
	if inner.MissingOutputPointer.OutputIndex != 5 {
		t.Fatalf("TestNewErrOutputNotFound: Expected 5. found: %d", inner.MissingOutputPointer.OutputIndex)
	}

	rule := &RuleError{}
	if !errors.As(outer, rule) {
		t.Fatal("TestNewErrOutputNotFound: Outer should contain RuleError in it")
	}
	if rule.message != "ErrOutputNotFound" {
		t.Fatalf("TestNewErrOutputNotFound: Expected message = 'ErrOutputNotFound', found: '%s'", rule.message)
	}

	if !errors.Is(outer, ErrOutputNotFound) {
		t.Fatal("TestNewErrOutputNotFound: Outer should match the ErrOutputNotFound sentinel")
	}
	if errors.Is(outer, ErrNegativeFee) {
		t.Fatal("TestNewErrOutputNotFound: Outer should not match an unrelated sentinel")
	}

	if outer.Error() != expectedOuterErr {
		t.Fatalf("TestNewErrOutputNotFound: Expected %s. found: %s", expectedOuterErr, outer.Error())
	}
}

func TestWrappedRuleError(t *testing.T) {
	wrapped := errors.Wrapf(ErrBlockFromFuture, "block epoch %d is greater than current epoch %d", 10, 9)
	if !errors.Is(wrapped, ErrBlockFromFuture) {
		t.Fatal("TestWrappedRuleError: wrapped error should match its sentinel")
	}
	if errors.Is(wrapped, ErrBlockOlderThanTip) {
		t.Fatal("TestWrappedRuleError: wrapped error should not match another sentinel")
	}
}
