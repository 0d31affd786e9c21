package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskforge-dev/taskforge/internal/apperrors"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestAge(t *testing.T) {
	today := date(2026, time.August, 31)

	cases := []struct {
		name      string
		birthdate time.Time
		want      int
	}{
		{name: "birthday already passed this year", birthdate: date(1996, time.March, 10), want: 30},
		{name: "birthday later this year", birthdate: date(1996, time.December, 1), want: 29},
		{name: "birthday today", birthdate: date(2010, time.August, 31), want: 16},
		{name: "birthday tomorrow", birthdate: date(2010, time.September, 1), want: 15},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Age(tc.birthdate, today))
		})
	}
}

func TestProfileUnderage(t *testing.T) {
	birthdate := time.Now().AddDate(-14, 0, 0)

	_, _, err := Profile(&birthdate, true, true)
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 400, appErr.Status)
	require.Equal(t, "Votre age doit être supérieur à 15ans pour partager vos données.", appErr.Message)
}

func TestProfileUnderageWithoutSharing(t *testing.T) {
	birthdate := time.Now().AddDate(-14, 0, 0)

	contacted, shared, err := Profile(&birthdate, true, false)
	require.NoError(t, err)
	require.True(t, contacted)
	require.False(t, shared)
}

func TestProfileAdult(t *testing.T) {
	birthdate := time.Now().AddDate(-30, 0, 0)

	contacted, shared, err := Profile(&birthdate, true, true)
	require.NoError(t, err)
	require.True(t, contacted)
	require.True(t, shared)
}

func TestProfileWithoutBirthdateForcesFlagsOff(t *testing.T) {
	contacted, shared, err := Profile(nil, true, true)
	require.NoError(t, err)
	require.False(t, contacted)
	require.False(t, shared)
}

func TestPassword(t *testing.T) {
	info := PersonalInfo{
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Martin",
		Email:     "alice.martin@example.com",
		BirthYear: "1996",
	}

	cases := []struct {
		name     string
		password string
		confirm  string
		message  string
	}{
		{name: "valid", password: "tr0ubadour88", confirm: "tr0ubadour88", message: ""},
		{name: "contains username", password: "alice12345", confirm: "alice12345", message: "Votre mot de passe ne peut pas trop ressembler à vos autres informations personnelles."},
		{name: "contains last name case insensitive", password: "xxMARTINxx1", confirm: "xxMARTINxx1", message: "Votre mot de passe ne peut pas trop ressembler à vos autres informations personnelles."},
		{name: "contains birth year", password: "pass1996word", confirm: "pass1996word", message: "Votre mot de passe ne peut pas trop ressembler à vos autres informations personnelles."},
		{name: "too short", password: "b0n", confirm: "b0n", message: "Votre mot de passe doit contenir au minimum 8 caractères."},
		{name: "all digits", password: "73829174", confirm: "73829174", message: "Votre mot de passe ne peut pas être entièrement numérique."},
		{name: "all letters", password: "bonjourtout", confirm: "bonjourtout", message: "Votre mot de passe doit contenir au moins un chiffre."},
		{name: "confirmation mismatch", password: "tr0ubadour88", confirm: "tr0ubadour99", message: "Les deux mots de passe ne correspondent pas."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Password(tc.password, tc.confirm, info)

			if tc.message == "" {
				require.NoError(t, err)
				return
			}

			require.EqualError(t, err, tc.message)
		})
	}
}

func TestPasswordSkipsEmptyAttributes(t *testing.T) {
	// An empty first name must not match every password.
	err := Password("tr0ubadour88", "tr0ubadour88", PersonalInfo{Username: "bob"})
	require.NoError(t, err)
}

func TestChoice(t *testing.T) {
	allowed := []string{"Low", "Medium", "High"}

	require.NoError(t, Choice("Medium", allowed))
	require.EqualError(t, Choice("Critical", allowed), "« Critical » n'est pas un choix valide.")
}
