package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dunglas/httpsfv"

	"wc-invoice-gateway/internal/middleware"
	"wc-invoice-gateway/internal/model"
)

// UserHeader carries the shopper the request is made for, as an RFC 8941
// dictionary: id=42, roles=("customer" "wholesale").
const UserHeader = "Invoice-User"

// ParseUserHeader decodes the Invoice-User header. An empty header is the
// guest user. Roles may be an inner list or a single string or token.
func ParseUserHeader(header string) (model.User, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return model.Guest(), nil
	}

	dict, err := httpsfv.UnmarshalDictionary([]string{header})
	if err != nil {
		return model.User{}, fmt.Errorf("invalid %s header: %w", UserHeader, err)
	}

	user := model.Guest()

	if member, ok := dict.Get("id"); ok {
		item, ok := member.(httpsfv.Item)
		if !ok {
			return model.User{}, fmt.Errorf("%s id must be an item", UserHeader)
		}
		id, ok := item.Value.(int64)
		if !ok || id < 0 {
			return model.User{}, fmt.Errorf("%s id must be a non-negative integer", UserHeader)
		}
		user.ID = int(id)
	}

	if member, ok := dict.Get("roles"); ok {
		switch m := member.(type) {
		case httpsfv.InnerList:
			for _, item := range m.Items {
				role, ok := roleValue(item)
				if !ok {
					return model.User{}, fmt.Errorf("%s roles must be strings or tokens", UserHeader)
				}
				user.Roles = append(user.Roles, role)
			}
		case httpsfv.Item:
			role, ok := roleValue(m)
			if !ok {
				return model.User{}, fmt.Errorf("%s roles must be strings or tokens", UserHeader)
			}
			user.Roles = append(user.Roles, role)
		}
	}

	return user, nil
}

func roleValue(item httpsfv.Item) (string, bool) {
	switch v := item.Value.(type) {
	case string:
		return v, v != ""
	case httpsfv.Token:
		return string(v), true
	}
	return "", false
}

// FormatUserHeader encodes u for the Invoice-User header.
func FormatUserHeader(u model.User) (string, error) {
	dict := httpsfv.NewDictionary()
	dict.Add("id", httpsfv.NewItem(int64(u.ID)))

	roles := httpsfv.InnerList{Items: []httpsfv.Item{}, Params: httpsfv.NewParams()}
	for _, r := range u.Roles {
		roles.Items = append(roles.Items, httpsfv.NewItem(r))
	}
	dict.Add("roles", roles)

	return httpsfv.Marshal(dict)
}

// requestUser returns the user of r, rejecting malformed headers.
func requestUser(r *http.Request) (model.User, error) {
	user, err := ParseUserHeader(r.Header.Get(UserHeader))
	if err != nil {
		return model.User{}, model.NewValidationError(UserHeader, err.Error())
	}
	middleware.Annotate(r.Context(), slog.Int("user_id", user.ID))
	return user, nil
}
