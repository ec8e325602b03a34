package modular

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "single word", in: "billing", want: "Billing"},
		{name: "snake case", in: "user_profile", want: "UserProfile"},
		{name: "kebab case", in: "user-profile", want: "UserProfile"},
		{name: "spaces", in: "user profile", want: "UserProfile"},
		{name: "mixed separators", in: "a_b-c d", want: "ABCD"},
		{name: "no singularization", in: "settings", want: "Settings"},
		{name: "no pluralization", in: "person", want: "Person"},
		{name: "plural compound kept", in: "order_items", want: "OrderItems"},
		{name: "inner capitals kept", in: "oAuth_client", want: "OAuthClient"},
		{name: "already classified", in: "UserProfile", want: "UserProfile"},
		{name: "repeated separators", in: "user__profile", want: "UserProfile"},
		{name: "leading and trailing separators", in: "_user_", want: "User"},
		{name: "digits", in: "v2_api", want: "V2Api"},
		{name: "word starting with digit", in: "foo_2fa", want: "Foo2fa"},
		{name: "leading digit", in: "2fa", want: "2fa"},
		{name: "non separator punctuation", in: "a/b", want: "A/b"},
		{name: "non ascii first letter", in: "élan_vital", want: "ÉlanVital"},
		{name: "multi rune upper form kept", in: "ßx", want: "ßx"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(tt.in))
		})
	}
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	r := NewResolver(`App\Modules`, "")

	assert.Equal(t, `App\Modules\UserProfile`, r.Resolve("user_profile"))
	assert.Equal(t, `App\Modules\Settings`, r.Resolve("settings"))
}

func TestResolver_Locate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		namespace string
		separator string
		id        string
		want      string
	}{
		{name: "default separator", namespace: `App\Modules`, id: "user_profile", want: `App\Modules\UserProfile\Module`},
		{name: "custom separator", namespace: "app.modules", separator: ".", id: "billing", want: "app.modules.Billing.Module"},
		{name: "empty namespace", id: "billing", want: `Billing\Module`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := NewResolver(tt.namespace, tt.separator)
			assert.Equal(t, tt.want, r.Locate(tt.id))
		})
	}
}

func TestResolver_ZeroValueUsesDefaultSeparator(t *testing.T) {
	t.Parallel()

	r := Resolver{Namespace: "App"}
	assert.Equal(t, `App\Billing\Module`, r.Locate("billing"))
}

func TestResolver_Deterministic(t *testing.T) {
	t.Parallel()

	r := NewResolver(`App\Modules`, "")
	first := r.Locate("user_profile")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, r.Locate("user_profile"))
	}
	assert.Equal(t, first, NewResolver(`App\Modules`, `\`).Locate("user_profile"))
}
