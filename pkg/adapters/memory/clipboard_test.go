package memory_test

import (
	"testing"

	"github.com/sz10101/vym/pkg/adapters/memory"
	"github.com/sz10101/vym/pkg/ports/tests"
)

func TestClipboard_Contract(t *testing.T) {
	store := memory.NewClipboard()
	tests.RunClipboardStoreContract(t, store)
}
