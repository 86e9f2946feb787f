package models

const MaxTotalPoint int64 = 10_000_000

// UserPoint is a user's balance at a point in time. Charge and Use never mutate the
// receiver; they return the next value.
type UserPoint struct {
	ID           int64 `json:"id"`
	Point        int64 `json:"point"`
	UpdateMillis int64 `json:"updateMillis"`
}

func EmptyUserPoint(id int64) UserPoint {
	return UserPoint{ID: id, Point: 0, UpdateMillis: NowMillis()}
}

func (p UserPoint) Charge(amount int64) (UserPoint, error) {
	if err := validateAmount(amount); err != nil {
		return UserPoint{}, err
	}
	// amount is bounded by the check, so comparing against the headroom cannot overflow
	if amount > MaxTotalPoint-p.Point {
		return UserPoint{}, newError(KindMaxPointExceeded, "Point exceed max limit.")
	}
	return UserPoint{ID: p.ID, Point: p.Point + amount, UpdateMillis: NowMillis()}, nil
}

func (p UserPoint) Use(amount int64) (UserPoint, error) {
	if err := validateAmount(amount); err != nil {
		return UserPoint{}, err
	}
	if p.Point < amount {
		return UserPoint{}, newError(KindInsufficientBalance, "Insufficient balance.")
	}
	return UserPoint{ID: p.ID, Point: p.Point - amount, UpdateMillis: NowMillis()}, nil
}

func validateAmount(amount int64) error {
	if amount <= 0 {
		return newError(KindInvalidAmount, "Amount must be > 0.")
	}
	return nil
}
