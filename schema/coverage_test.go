package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Gobd/apispec/schema"
)

type stamp struct {
	Created string `json:"created"`
}

func (s *stamp) Rules() []*schema.FieldRules {
	return []*schema.FieldRules{schema.Field(&s.Created, schema.Required)}
}

type article struct {
	stamp
	Title    string `json:"title"`
	Body     string `json:"body"`
	Draft    bool   `json:"draft" validate:"-"`
	Internal string `json:"-"`
	Notes    string `json:"notes" docs:"skip"`
	Slug     string
}

func (a *article) Rules() []*schema.FieldRules {
	return []*schema.FieldRules{
		schema.Field(&a.stamp),
		schema.Field(&a.Title, schema.Required),
	}
}

func TestMissingRules(t *testing.T) {
	assert.Equal(t, []string{"body", "Slug"}, schema.MissingRules(&article{}))
	assert.Equal(t, []string{"Slug"}, schema.MissingRules(&article{}, "body"))
	assert.Empty(t, schema.MissingRules(&User{}))
	assert.Nil(t, schema.MissingRules(&struct{ A int }{}))
}
