package demo

import "github.com/Gobd/apispec/schema"

// Message is the body of error and status responses.
type Message struct {
	Message string `json:"message"`
}

// User is a user of the toy database.
type User struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Gender string `json:"gender,omitempty"`
}

// Normalize trims the user's strings before validation.
func (u *User) Normalize() { schema.TrimStrings(u) }

func (u *User) Rules() []*schema.FieldRules {
	return []*schema.FieldRules{
		schema.Field(&u.ID, schema.Required),
		schema.Field(&u.Name, schema.Required),
		schema.Field(&u.Gender, schema.In("f", "m")),
	}
}

// UsersList wraps every stored user.
type UsersList struct {
	Items []User `json:"items"`
}

// UserPath holds the matched {id} of a single-user route.
type UserPath struct {
	ID int `json:"id"`
}

func (p *UserPath) Rules() []*schema.FieldRules {
	return []*schema.FieldRules{
		schema.Field(&p.ID, schema.Required, schema.Min(1), schema.Describe("user id")),
	}
}
