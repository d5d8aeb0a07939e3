package memory

import (
	"testing"

	"github.com/plasma-fi/presale-server/pkg/presale/data/purchase/tests"
)

func TestPurchaseMemoryStore(t *testing.T) {
	testStore := New()
	teardown := func() {
		testStore.(*store).reset()
	}
	tests.RunTests(t, testStore, teardown)
}
