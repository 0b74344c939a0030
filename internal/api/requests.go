package api

import (
	"errors"
	"mime"
	"net/http"
	"net/url"

	"github.com/bytedance/sonic"
)

type CreateUserRequest struct {
	Username string `json:"username"`
}

func (req *CreateUserRequest) bindForm(form url.Values) {
	req.Username = form.Get("username")
}

type AddActivityRequest struct {
	UserID      string        `json:"userId"`
	Description string        `json:"description"`
	Duration    NumericString `json:"duration"`
	Date        string        `json:"date"`
}

func (req *AddActivityRequest) bindForm(form url.Values) {
	req.UserID = form.Get("userId")
	req.Description = form.Get("description")
	req.Duration = NumericString(form.Get("duration"))
	req.Date = form.Get("date")
}

// NumericString accepts both 30 and "30" in JSON bodies, keeping the raw text for validation.
type NumericString string

func (n *NumericString) UnmarshalJSON(b []byte) error {
	switch {
	case string(b) == "null":
		*n = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := sonic.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumericString(s)
	default:
		*n = NumericString(b)
	}
	return nil
}

type formBinder interface {
	bindForm(form url.Values)
}

var errEmptyBody = errors.New("empty request body")

// decodeBody fills dst from a urlencoded form or a JSON body.
func decodeBody(r *http.Request, dst formBinder) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return err
		}
		dst.bindForm(r.PostForm)
		return nil
	}
	if r.Body == nil || r.Body == http.NoBody {
		return errEmptyBody
	}
	return sonic.ConfigDefault.NewDecoder(r.Body).Decode(dst)
}
