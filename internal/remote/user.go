package remote

import (
	"context"
	"net/url"

	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/config"
	"github.com/DangTDuy/ev-dealer-management-sub001/pkg/logger"
)

// UserClient reads staff records from the user service.
type UserClient struct {
	base baseClient
}

func NewUserClient(cfg config.UpstreamsConfig, logg *logger.Logger) *UserClient {
	return &UserClient{base: newBaseClient(cfg.UserURL, "user", cfg.HTTPTimeout, logg)}
}

// GetUsers lists staff, preferring the internal endpoint and falling back to
// the public one when the internal route is absent.
func (c *UserClient) GetUsers(ctx context.Context) []User {
	body, ok := c.base.getJSON(ctx, "/api/internal/users", nil)
	if !ok {
		body, ok = c.base.getJSON(ctx, "/api/users", nil)
	}
	if !ok {
		return nil
	}

	items, err := unwrapList(body, "users")
	if err != nil {
		c.base.warnDecode(ctx, "/api/internal/users", err)
		return nil
	}

	users := make([]User, 0, len(items))
	for _, item := range items {
		obj, err := decodeObject(item)
		if err != nil {
			continue
		}
		users = append(users, decodeUser(obj))
	}
	return users
}

// GetUserByID looks up one staff member, returning nil when unavailable.
func (c *UserClient) GetUserByID(ctx context.Context, userID string) *User {
	body, ok := c.base.getJSON(ctx, "/api/users/"+url.PathEscape(userID), nil)
	if !ok {
		return nil
	}
	obj, err := unwrapEntity(body, "user")
	if err != nil {
		c.base.warnDecode(ctx, "/api/users/{id}", err)
		return nil
	}
	user := decodeUser(obj)
	if user.ID == "" {
		user.ID = userID
	}
	return &user
}

func decodeUser(obj object) User {
	return User{
		ID:       fieldString(obj, "id"),
		FullName: fieldString(obj, "fullName"),
		Username: fieldString(obj, "username"),
		Email:    fieldString(obj, "email"),
		Role:     fieldString(obj, "role"),
		IsActive: fieldBool(obj, "isActive"),
		DealerID: fieldString(obj, "dealerId"),
	}
}
