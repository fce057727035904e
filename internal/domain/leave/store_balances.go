package leave

import "context"

func (s *Store) ListBalances(ctx context.Context, employeeID string) ([]Balance, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT employee_id, kind_code, balance, used, updated_at
    FROM leave_balances
    WHERE employee_id = $1
    ORDER BY kind_code
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []Balance
	for rows.Next() {
		var b Balance
		if err := rows.Scan(&b.EmployeeID, &b.KindCode, &b.Balance, &b.Used, &b.UpdatedAt); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, nil
}

func (s *Store) AdjustBalance(ctx context.Context, employeeID, kindCode string, amount float64) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO leave_balances (employee_id, kind_code, balance, used)
    VALUES ($1,$2,$3,0)
    ON CONFLICT (employee_id, kind_code)
    DO UPDATE SET balance = leave_balances.balance + EXCLUDED.balance, updated_at = now()
  `, employeeID, kindCode, amount)
	return err
}

// DebitBalance moves days from balance to used on final approval.
func (s *Store) DebitBalance(ctx context.Context, employeeID, kindCode string, days float64) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO leave_balances (employee_id, kind_code, balance, used)
    VALUES ($1,$2,0,$3)
    ON CONFLICT (employee_id, kind_code)
    DO UPDATE SET balance = leave_balances.balance - EXCLUDED.used,
                  used = leave_balances.used + EXCLUDED.used,
                  updated_at = now()
  `, employeeID, kindCode, days)
	return err
}
