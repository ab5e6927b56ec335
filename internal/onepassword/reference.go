package onepassword

import (
	"fmt"
	"strings"

	"github.com/ojsef39/opsops/internal/errs"
)

const referenceScheme = "op://"

// Reference addresses one field of a 1Password item.
type Reference struct {
	Vault string
	Item  string
	Field string
}

// ParseReference accepts exactly op://<vault>/<item>/<field>.
func ParseReference(s string) (Reference, error) {
	rest, ok := strings.CutPrefix(s, referenceScheme)
	if !ok {
		return Reference{}, fmt.Errorf("%w: 1Password reference %q must start with %s", errs.ErrInvalidFormat, s, referenceScheme)
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 3 {
		return Reference{}, fmt.Errorf("%w: 1Password reference %q must have the form op://<vault>/<item>/<field>", errs.ErrInvalidFormat, s)
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return Reference{}, fmt.Errorf("%w: 1Password reference %q has an empty segment", errs.ErrInvalidFormat, s)
		}
	}
	return Reference{Vault: parts[0], Item: parts[1], Field: parts[2]}, nil
}

func (r Reference) String() string {
	return referenceScheme + r.Vault + "/" + r.Item + "/" + r.Field
}
