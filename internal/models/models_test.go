package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSignUpRequestValidate(t *testing.T) {
	valid := SignUpRequest{Name: "Ada", Email: "ada@example.com", Password: "hunter2hunter2"}
	assert.NoError(t, valid.Validate())

	short := valid
	short.Name = "A"
	assert.Error(t, short.Validate())

	noEmail := valid
	noEmail.Email = ""
	assert.Error(t, noEmail.Validate())

	weak := valid
	weak.Password = "short"
	assert.Error(t, weak.Validate())
}

func TestCreateCommunityRequestValidate(t *testing.T) {
	valid := CreateCommunityRequest{Name: "Bike Commuters", Niche: NicheSustainableTransport}
	assert.NoError(t, valid.Validate())

	badNiche := valid
	badNiche.Niche = "KNITTING"
	assert.Error(t, badNiche.Validate())

	longDesc := valid
	longDesc.Description = strings.Repeat("x", 501)
	assert.Error(t, longDesc.Validate())
}

func TestCreateGoalRequestValidate(t *testing.T) {
	valid := CreateGoalRequest{Title: "Save 10 tons", TargetValue: 10}
	assert.NoError(t, valid.Validate())

	zeroTarget := valid
	zeroTarget.TargetValue = 0
	assert.Error(t, zeroTarget.Validate())

	negTarget := valid
	negTarget.TargetValue = -5
	assert.Error(t, negTarget.Validate())
}

func TestCreateActivityLogRequestValidate(t *testing.T) {
	valid := CreateActivityLogRequest{
		Description:  "Cycled to work all week",
		CarbonSaved:  0.2,
		ActivityDate: time.Now().Add(-time.Hour),
	}
	assert.NoError(t, valid.Validate())

	negative := valid
	negative.CarbonSaved = -1
	assert.Error(t, negative.Validate())

	future := valid
	future.ActivityDate = time.Now().Add(24 * time.Hour)
	assert.Error(t, future.Validate())

	noDate := valid
	noDate.ActivityDate = time.Time{}
	assert.Error(t, noDate.Validate())

	// Zero carbon saved is allowed; only negatives are rejected.
	zero := valid
	zero.CarbonSaved = 0
	assert.NoError(t, zero.Validate())
}

func TestCreatePostRequestValidate(t *testing.T) {
	assert.NoError(t, (&CreatePostRequest{Content: "Planted a tree today"}).Validate())
	assert.Error(t, (&CreatePostRequest{}).Validate())
	assert.Error(t, (&CreatePostRequest{Content: strings.Repeat("x", 2001)}).Validate())
}
