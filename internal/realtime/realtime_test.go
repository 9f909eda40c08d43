package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffer_KeepsLatest(t *testing.T) {
	ch := make(chan int, 1)

	Offer(ch, 1)
	Offer(ch, 2)
	Offer(ch, 3)

	assert.Equal(t, 3, <-ch)
	select {
	case v := <-ch:
		t.Fatalf("unexpected value %d", v)
	default:
	}
}

func TestChannels(t *testing.T) {
	assert.Equal(t, "locations:u1", LocationChannel("u1"))
	assert.Equal(t, "profiles:u1", ProfileChannel("u1"))
}
