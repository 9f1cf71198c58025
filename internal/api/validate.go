package api

import (
	"fmt"
	"regexp"
	"strings"

	"fitness-planner/internal/models"
	"fitness-planner/internal/plan"
)

const minPasswordLen = 6

var (
	emailPattern   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	contactPattern = regexp.MustCompile(`^\d{10}$`)

	genders = []string{"Male", "Female", "Other"}
)

// validateRegistration trims req in place and returns a message for the first
// rule it breaks, in the order the sign-up form reports them, or "".
func validateRegistration(req *models.RegisterRequest) string {
	req.Username = strings.TrimSpace(req.Username)
	req.Contact = strings.TrimSpace(req.Contact)
	req.Email = strings.TrimSpace(req.Email)
	req.Address = strings.TrimSpace(req.Address)
	req.Gender = strings.TrimSpace(req.Gender)

	for _, v := range []string{req.Username, req.Contact, req.Email, req.Gender, req.Address, req.Password, req.ConfirmPassword} {
		if v == "" {
			return "Please fill in all the fields."
		}
	}

	gender, ok := canonicalGender(req.Gender)
	if !ok {
		return "Gender must be one of Male, Female or Other."
	}
	req.Gender = gender

	switch {
	case req.Password != req.ConfirmPassword:
		return "Passwords do not match."
	case len(req.Password) < minPasswordLen:
		return fmt.Sprintf("Password must be at least %d characters long.", minPasswordLen)
	case !emailPattern.MatchString(req.Email):
		return "Please enter a valid email address."
	case !contactPattern.MatchString(req.Contact):
		return "Contact number must be a 10-digit number."
	}
	return ""
}

func canonicalGender(s string) (string, bool) {
	for _, g := range genders {
		if strings.EqualFold(s, g) {
			return g, true
		}
	}
	return "", false
}

// validateProfile is stricter than the generator: the activity level must be
// one the form offers.
func validateProfile(p plan.Profile) error {
	if _, err := plan.ParseActivityLevel(string(p.ActivityLevel)); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	// reject profiles the rule set cannot produce a plan for
	_, err := plan.Generate(p)
	return err
}
