package domain

import (
	"encoding/json"
	"strconv"
)

// Salary is an optional monthly amount in IDR. The zero value means "no salary".
type Salary struct {
	Amount int64
	Valid  bool
}

func SalaryOf(amount int64) Salary {
	if amount <= 0 {
		return NoSalary()
	}
	return Salary{Amount: amount, Valid: true}
}

func NoSalary() Salary { return Salary{} }

func (s Salary) String() string {
	if !s.Valid {
		return ""
	}
	return strconv.FormatInt(s.Amount, 10)
}

// MarshalJSON renders a missing salary as null.
func (s Salary) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Amount)
}

func (s *Salary) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = NoSalary()
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = SalaryOf(n)
	return nil
}
