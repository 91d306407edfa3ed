package ports_test

import (
	"testing"

	"github.com/aretw0/expect/pkg/ports"
	"github.com/stretchr/testify/assert"
)

func TestValidName(t *testing.T) {
	for _, name := range []string{"user", "user.v2", "order_line", "a-b", "0"} {
		assert.NoError(t, ports.ValidName(name), name)
	}
	for _, name := range []string{"", ".hidden", "../x", "a/b", "a b", `a\b`} {
		assert.ErrorIs(t, ports.ValidName(name), ports.ErrInvalidName, name)
	}
}
