package onepassword

import "strings"

// Category is a 1Password item category.
type Category string

const (
	CategoryLogin    Category = "login"
	CategoryPassword Category = "password"
	CategoryIdentity Category = "identity"
	CategoryServer   Category = "server"
)

// Field types understood by `op item create` assignments.
const (
	FieldString   = "STRING"
	FieldPassword = "PASSWORD"
)

// Field is one assignment statement for `op item create`.
type Field struct {
	Section string
	Label   string
	Type    string
	Value   string
}

// Flag renders the field as [section.]label[[type]]=value.
func (f Field) Flag() string {
	var b strings.Builder
	if f.Section != "" {
		b.WriteString(f.Section)
		b.WriteByte('.')
	}
	b.WriteString(f.Label)
	if f.Type != "" {
		b.WriteString("[" + f.Type + "]")
	}
	b.WriteByte('=')
	b.WriteString(f.Value)
	return b.String()
}

// Item describes an item to create.
type Item struct {
	Vault    string
	Title    string
	Category Category
	Fields   []Field
}

func (i Item) args() []string {
	category := i.Category
	if category == "" {
		category = CategoryPassword
	}
	args := []string{"item", "create", "--vault", i.Vault, "--title", i.Title, "--category", string(category)}
	for _, f := range i.Fields {
		args = append(args, f.Flag())
	}
	return args
}

// secrets returns the values of password-typed fields.
func (i Item) secrets() []string {
	var out []string
	for _, f := range i.Fields {
		if f.Type == FieldPassword {
			out = append(out, f.Value)
		}
	}
	return out
}
