package dbx_test

import (
	"testing"

	"github.com/5w1tchy/password-meter/internal/store/dbx"
)

func TestPlaceholders(t *testing.T) {
	if got := dbx.Placeholders(2, 3); got != "($1,$2,$3),($4,$5,$6)" {
		t.Fatalf("got %s", got)
	}
	if got := dbx.Placeholders(1, 1); got != "($1)" {
		t.Fatalf("got %s", got)
	}
	if got := dbx.Placeholders(0, 3); got != "" {
		t.Fatalf("got %s", got)
	}
}
