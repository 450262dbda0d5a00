package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/birthdaykeeper/birthday-api/internal/core/ports"
)

const dateLayout = "2006-01-02"

type friendRequest struct {
	Firstname   string `json:"firstname"   validate:"required,max=40"`
	Lastname    string `json:"lastname"    validate:"required,max=40"`
	Nickname    string `json:"nickname"    validate:"max=40"`
	DateOfBirth string `json:"dateOfBirth" validate:"required"`
}

type friendUpdateRequest struct {
	ID string `json:"id" validate:"required"`
	friendRequest
}

type friendResponse struct {
	ID                    string `json:"id"`
	Firstname             string `json:"firstname"`
	Lastname              string `json:"lastname"`
	Nickname              string `json:"nickname,omitempty"`
	DateOfBirth           string `json:"dateOfBirth"`
	DaysUntilNextBirthday int    `json:"daysUntilNextBirthday"`
}

// toInput parses and checks the date of birth: ISO date, strictly in the past.
func (r *friendRequest) toInput() (ports.FriendInput, error) {
	dob, err := time.Parse(dateLayout, r.DateOfBirth)
	if err != nil {
		return ports.FriendInput{}, echo.NewHTTPError(http.StatusBadRequest, "dateOfBirth must be a date in the form YYYY-MM-DD")
	}
	if !dob.Before(time.Now()) {
		return ports.FriendInput{}, echo.NewHTTPError(http.StatusBadRequest, "dateOfBirth must be in the past")
	}

	return ports.FriendInput{
		Firstname:   r.Firstname,
		Lastname:    r.Lastname,
		Nickname:    r.Nickname,
		DateOfBirth: dob,
	}, nil
}

func toFriendResponse(v *ports.FriendView) friendResponse {
	return friendResponse{
		ID:                    v.ID,
		Firstname:             v.Firstname,
		Lastname:              v.Lastname,
		Nickname:              v.Nickname,
		DateOfBirth:           v.DateOfBirth.Format(dateLayout),
		DaysUntilNextBirthday: v.DaysUntilNextBirthday,
	}
}

func toFriendResponses(views []ports.FriendView) []friendResponse {
	out := make([]friendResponse, 0, len(views))
	for i := range views {
		out = append(out, toFriendResponse(&views[i]))
	}
	return out
}
