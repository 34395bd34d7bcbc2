package handler

import (
	"reflect"
	"testing"

	"wc-invoice-gateway/internal/model"
)

func TestParseUserHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    model.User
		wantErr bool
	}{
		{"empty is guest", "", model.User{Roles: []string{}}, false},
		{"id and role list", `id=42, roles=("customer" "wholesale")`, model.User{ID: 42, Roles: []string{"customer", "wholesale"}}, false},
		{"token roles", `id=7, roles=(customer shop_manager)`, model.User{ID: 7, Roles: []string{"customer", "shop_manager"}}, false},
		{"single role", `roles="customer"`, model.User{Roles: []string{"customer"}}, false},
		{"empty role list", `id=3, roles=()`, model.User{ID: 3, Roles: []string{}}, false},
		{"unknown keys ignored", `id=1, locale="de"`, model.User{ID: 1, Roles: []string{}}, false},
		{"malformed", `roles=("customer"`, model.User{}, true},
		{"string id", `id="42"`, model.User{}, true},
		{"negative id", `id=-1`, model.User{}, true},
		{"numeric role", `roles=(1 2)`, model.User{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUserHeader(tt.header)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseUserHeader() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseUserHeader() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFormatUserHeader(t *testing.T) {
	u := model.User{ID: 42, Roles: []string{"customer", "wholesale"}}

	header, err := FormatUserHeader(u)
	if err != nil {
		t.Fatalf("FormatUserHeader() error: %v", err)
	}
	if header != `id=42, roles=("customer" "wholesale")` {
		t.Errorf("header = %s", header)
	}

	parsed, err := ParseUserHeader(header)
	if err != nil {
		t.Fatalf("ParseUserHeader() error: %v", err)
	}
	if !reflect.DeepEqual(parsed, u) {
		t.Errorf("parsed = %+v, want %+v", parsed, u)
	}
}
