package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestFormatOrderNumber(t *testing.T) {
	tests := []struct {
		id   uint
		want string
	}{
		{7, "ORD000007"},
		{123456, "ORD123456"},
		{1234567, "ORD1234567"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatOrderNumber(tt.id))
		})
	}
}

func TestMenuItem_Variations(t *testing.T) {
	item := MenuItem{PriceVariations: datatypes.JSONMap{
		"Half":  float64(150),
		"Full":  json.Number("250"),
		"Plate": int64(90),
		"Odd":   1.5,
		"Bad":   "free",
	}}

	assert.Equal(t, map[string]int64{"Half": 150, "Full": 250, "Plate": 90}, item.Variations())
}

func TestIsTrackableStatus(t *testing.T) {
	assert.True(t, IsTrackableStatus("out_for_delivery"))
	assert.False(t, IsTrackableStatus("ready"))
	assert.False(t, IsTrackableStatus("PENDING"))
	assert.Len(t, TrackableStatusNames(), 6)
}

func TestPasswordResetToken_Expired(t *testing.T) {
	now := time.Now()
	token := PasswordResetToken{CreatedAt: now.Add(-59 * time.Minute)}
	assert.False(t, token.Expired(now, time.Hour))

	token.CreatedAt = now.Add(-61 * time.Minute)
	assert.True(t, token.Expired(now, time.Hour))
}

func TestUser_Owner(t *testing.T) {
	u := User{IsActive: 1, IsStaff: 1, IsSuperuser: 0}
	assert.False(t, u.Owner())
	u.IsSuperuser = 1
	assert.True(t, u.Owner())
}

func TestParseOrderNumber(t *testing.T) {
	tests := []struct {
		in        string
		id        uint64
		hasPrefix bool
		wantErr   bool
	}{
		{"ORD007", 7, true, false},
		{"ord7", 7, true, false},
		{" ORD000123 ", 123, true, false},
		{"ORD000", 0, true, false},
		{"ORD", 0, true, false},
		{"ORDxyz", 0, true, true},
		{"42", 0, false, false},
		{"Priya", 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			id, hasPrefix, err := ParseOrderNumber(tt.in)
			assert.Equal(t, tt.hasPrefix, hasPrefix)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.id, id)
		})
	}
}
