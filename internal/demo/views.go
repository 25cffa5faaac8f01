package demo

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Gobd/apispec"
)

type views struct {
	store *Store
	log   *slog.Logger
}

func notFound() apispec.Response {
	return apispec.Response{Description: "Not Found", Schema: Message{}}
}

func serverError() apispec.Response {
	return apispec.Response{Description: "Server error", Schema: Message{}}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (v *views) listUsers(cat *apispec.Catalog) *apispec.View {
	return cat.HandleFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, UsersList{Items: v.store.List()})
	},
		apispec.Docs(apispec.Doc{
			Tags:        []string{"users"},
			Summary:     "Get users list",
			Description: "Get list of all users from our toy database",
			Responses: map[int]apispec.Response{
				http.StatusOK:                  {Description: "Ok. Users list", Schema: UsersList{}},
				http.StatusNotFound:            notFound(),
				http.StatusInternalServerError: serverError(),
			},
		}),
	)
}

func (v *views) getUser(cat *apispec.Catalog) *apispec.View {
	return cat.HandleFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := apispec.Value[*UserPath](r, "path")
		if !ok {
			writeJSON(w, http.StatusInternalServerError, Message{Message: "missing path parameters"})
			return
		}
		u, err := v.store.Get(p.ID)
		if err != nil {
			writeJSON(w, http.StatusNotFound, Message{Message: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, u)
	},
		apispec.Docs(apispec.Doc{
			Tags:        []string{"users"},
			Summary:     "Get user",
			Description: "Get single user from our toy database",
			Responses: map[int]apispec.Response{
				http.StatusOK:                  {Description: "Ok. User", Schema: User{}},
				http.StatusNotFound:            notFound(),
				http.StatusInternalServerError: serverError(),
			},
		}),
		apispec.PathSchema(UserPath{}, apispec.PutInto("path")),
	)
}

func (v *views) createUser(cat *apispec.Catalog) *apispec.View {
	return cat.HandleFunc(func(w http.ResponseWriter, r *http.Request) {
		var u User
		if err := apispec.Bind(r, &u); err != nil {
			writeJSON(w, http.StatusInternalServerError, Message{Message: err.Error()})
			return
		}
		if err := v.store.Add(u); err != nil {
			if errors.Is(err, ErrDuplicate) {
				writeJSON(w, http.StatusConflict, Message{Message: err.Error()})
				return
			}
			writeJSON(w, http.StatusInternalServerError, Message{Message: err.Error()})
			return
		}
		v.log.Info("user created", "id", u.ID)
		writeJSON(w, http.StatusOK, u)
	},
		apispec.Docs(apispec.Doc{
			Tags:        []string{"users"},
			Summary:     "Create new user",
			Description: "Add new user to our toy database",
			Responses: map[int]apispec.Response{
				http.StatusOK:                  {Description: "Ok. User created", Schema: User{}},
				http.StatusUnauthorized:        {Description: "Unauthorized"},
				http.StatusConflict:            {Description: "User already exists", Schema: Message{}},
				http.StatusUnprocessableEntity: {Description: "Validation error"},
				http.StatusInternalServerError: serverError(),
			},
		}),
		apispec.JSONSchema(User{}, apispec.Required(true)),
	)
}
