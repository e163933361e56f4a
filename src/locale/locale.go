package locale

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/BielosX/wombat/pokenat/src/prefs"
)

const (
	English = "en"
	French  = "fr"
	Default = English
)

var Supported = []string{French, English}

var ErrUnsupported = errors.New("unsupported language")

func IsSupported(code string) bool {
	return slices.Contains(Supported, code)
}

// Resolve maps a stored language code to an effective one, falling back to Default
// when the code is absent or not in Supported.
func Resolve(stored string) string {
	code := strings.ToLower(strings.TrimSpace(stored))
	if IsSupported(code) {
		return code
	}
	return Default
}

// Load reads the persisted language. A read failure still yields Default alongside the error.
func Load(ctx context.Context, store prefs.Store) (string, error) {
	stored, ok, err := store.Get(ctx, prefs.KeyLanguage)
	if err != nil {
		return Default, err
	}
	if !ok {
		return Default, nil
	}
	return Resolve(stored), nil
}

func Save(ctx context.Context, store prefs.Store, code string) error {
	if !IsSupported(code) {
		return fmt.Errorf("%w: %q", ErrUnsupported, code)
	}
	return store.Set(ctx, prefs.KeyLanguage, code)
}
