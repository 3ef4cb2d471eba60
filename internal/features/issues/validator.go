package issues

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/xyz-asif/civiclens/internal/pkg/response"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateCreateIssue checks a creation payload against the issue schema and
// returns one violation per failing field, empty when the payload is valid.
func ValidateCreateIssue(req *CreateIssueRequest) []response.FieldViolation {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []response.FieldViolation{{Field: "body", Message: "invalid payload"}}
	}

	violations := make([]response.FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, response.FieldViolation{
			Field:   jsonFieldName(fe),
			Message: violationMessage(fe),
		})
	}
	return violations
}

func jsonFieldName(fe validator.FieldError) string {
	// StructNamespace is like "CreateIssueRequest.Title"; report the JSON name.
	name := fe.Field()
	switch name {
	case "Title":
		return "title"
	case "Description":
		return "description"
	case "Category":
		return "category"
	case "Lat":
		return "lat"
	case "Lng":
		return "lng"
	case "PhotoURL":
		return "photoUrl"
	case "Ward":
		return "ward"
	default:
		return strings.ToLower(name)
	}
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}

// ValidStatus reports whether a status filter value names a known status.
func ValidStatus(s string) bool {
	switch IssueStatus(s) {
	case StatusOpen, StatusAssigned, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}
