package memory_test

import (
	"testing"

	"github.com/hepworks/nllfit/pkg/adapters/memory"
	"github.com/hepworks/nllfit/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunResultStoreContract(t, memory.New())
}
