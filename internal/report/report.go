package report

import (
	"fmt"
	"io"

	"github.com/5w1tchy/password-meter/internal/security/password"
)

const (
	BannerWeak     = "Your password is weak. Here are some suggestions:"
	BannerModerate = "Your password is moderate. Consider the suggestions below:"
	BannerStrong   = "Great job! Your password is strong."

	MsgMissing   = "Please enter a password to evaluate."
	MsgGenerated = "Here is a strong password you can use:"
)

// Banner is the one-line verdict shown above the suggestions.
func Banner(l password.Label) string {
	switch l {
	case password.Strong:
		return BannerStrong
	case password.Moderate:
		return BannerModerate
	default:
		return BannerWeak
	}
}

// Evaluation is a Result plus its banner, as served over HTTP.
type Evaluation struct {
	password.Result
	Message string `json:"message"`
}

func NewEvaluation(res password.Result) Evaluation {
	return Evaluation{Result: res, Message: Banner(res.Strength)}
}

// WriteText renders res for a terminal:
//
//	Password Strength: Moderate
//	Score: 5/6
//	Your password is moderate. Consider the suggestions below:
//	- Password should have at least one special character (!@#$%^&*).
func WriteText(w io.Writer, res password.Result) error {
	if _, err := fmt.Fprintf(w, "Password Strength: %s\nScore: %d/%d\n%s\n",
		res.Strength, res.Score, password.MaxScore, Banner(res.Strength)); err != nil {
		return err
	}
	for _, s := range res.Suggestions {
		if _, err := fmt.Fprintf(w, "- %s\n", s); err != nil {
			return err
		}
	}
	return nil
}
