package remote

import (
	"context"
	"fmt"
	"time"

	"shopping-api/domain/shopping"
	"shopping-api/domain/user"
)

// userDTO is the identity service's user body.
type userDTO struct {
	Name         string `json:"name"`
	CPF          string `json:"cpf"`
	Address      string `json:"address"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	DateRegister string `json:"dateRegister"`
}

var registerLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	"02-01-2006 15:04:05",
}

func parseRegisterDate(s string) time.Time {
	for _, layout := range registerLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// IdentityClient resolves users with GET {base}/users/cpf/{cpf}.
type IdentityClient struct {
	c *client
}

func NewIdentityClient(cfg Config, opts ...Option) *IdentityClient {
	return &IdentityClient{c: newClient("identity", cfg, opts...)}
}

// Resolve returns the tagged result of one lookup.
func (ic *IdentityClient) Resolve(ctx context.Context, cpf string) Result[*user.User] {
	res := get[userDTO](ctx, ic.c, "users/cpf", cpf)
	out := Result[*user.User]{Outcome: res.Outcome, StatusCode: res.StatusCode, Err: res.Err}
	if res.Outcome != Found {
		return out
	}
	if res.Value.CPF == "" {
		out.Outcome = ServerError
		out.Err = fmt.Errorf("identity response for %s has no cpf", cpf)
		return out
	}
	out.Value = user.RebuildFromDTO(user.ReconstructionDTO{
		Name:         res.Value.Name,
		CPF:          res.Value.CPF,
		Address:      res.Value.Address,
		Email:        res.Value.Email,
		Phone:        res.Value.Phone,
		DateRegister: parseRegisterDate(res.Value.DateRegister),
	})
	return out
}

// FindUser implements shopping.UserLookup.
func (ic *IdentityClient) FindUser(ctx context.Context, cpf string) (*user.User, error) {
	return ic.Resolve(ctx, cpf).Get("user", cpf)
}

var _ shopping.UserLookup = (*IdentityClient)(nil)
