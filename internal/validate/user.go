package validate

import (
	"strings"
	"time"
	"unicode"

	"github.com/taskforge-dev/taskforge/internal/apperrors"
)

const minAgeToShareData = 15

// Age returns the number of full years between birthdate and today.
func Age(birthdate, today time.Time) int {
	age := today.Year() - birthdate.Year()

	if today.Month() < birthdate.Month() ||
		(today.Month() == birthdate.Month() && today.Day() < birthdate.Day()) {
		age--
	}

	return age
}

// Profile checks the age rule and returns the visibility flags to persist.
// Without a birthdate both flags are forced off.
func Profile(birthdate *time.Time, canBeContacted, canDataBeShared bool) (bool, bool, error) {
	if birthdate == nil {
		return false, false, nil
	}

	if Age(*birthdate, time.Now()) <= minAgeToShareData && canDataBeShared {
		return false, false, apperrors.Validation("Votre age doit être supérieur à 15ans pour partager vos données.")
	}

	return canBeContacted, canDataBeShared, nil
}

// PersonalInfo is the material a password may not resemble.
type PersonalInfo struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	BirthYear string
}

func resembles(password, attribute string) bool {
	if attribute == "" {
		return false
	}

	password = strings.ToLower(password)
	attribute = strings.ToLower(attribute)

	return strings.Contains(password, attribute) || strings.Contains(attribute, password)
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Password applies the strength rules, first violation wins.
func Password(password, confirm string, info PersonalInfo) error {
	emailLocal, _, _ := strings.Cut(info.Email, "@")

	attributes := []string{
		info.Username,
		info.FirstName,
		info.LastName,
		emailLocal,
		info.BirthYear,
	}

	for _, attribute := range attributes {
		if resembles(password, attribute) {
			return apperrors.Validation("Votre mot de passe ne peut pas trop ressembler à vos autres informations personnelles.")
		}
	}

	if len(password) < 8 {
		return apperrors.Validation("Votre mot de passe doit contenir au minimum 8 caractères.")
	}

	if isDigits(password) {
		return apperrors.Validation("Votre mot de passe ne peut pas être entièrement numérique.")
	}

	if isLetters(password) {
		return apperrors.Validation("Votre mot de passe doit contenir au moins un chiffre.")
	}

	if password != confirm {
		return apperrors.Validation("Les deux mots de passe ne correspondent pas.")
	}

	return nil
}
