package premium

import (
	"strconv"
	"time"
)

// CardInput is the payment card payload for a premium subscription.
type CardInput struct {
	CardNumber  string `json:"card_number"`
	ExpiryMonth string `json:"expiry_month"`
	ExpiryYear  string `json:"expiry_year"`
	CVC         string `json:"cvc"`
}

// ValidCardNumber runs the Luhn check over a card number.
func ValidCardNumber(cardNumber string) bool {
	if cardNumber == "" {
		return false
	}

	var sum int
	shouldDouble := false
	for i := len(cardNumber) - 1; i >= 0; i-- {
		if cardNumber[i] < '0' || cardNumber[i] > '9' {
			return false
		}
		digit := int(cardNumber[i] - '0')

		if shouldDouble {
			digit = digit * 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
		shouldDouble = !shouldDouble
	}
	return sum%10 == 0
}

// ValidExpiry reports whether MM/YYYY is a real month that has not
// already passed.
func ValidExpiry(month, year string) bool {
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return false
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return false
	}

	currentYear, currentMonth, _ := time.Now().Date()
	if y < currentYear || (y == currentYear && m < int(currentMonth)) {
		return false
	}
	return true
}
