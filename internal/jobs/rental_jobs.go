package jobs

import (
	"context"
	"fmt"
	"time"

	"borrowbay-backend/internal/domain"
	"borrowbay-backend/internal/logger"
)

// CompleteLapsedRentals completes ACTIVE rentals whose end_date has passed.
// Owners can also complete manually; the sweep is the backstop for rentals
// nobody closed out.
func (jr *JobRunner) CompleteLapsedRentals() {
	jr.runWithRecovery("CompleteLapsedRentals", func() {
		ctx := context.Background()

		query := `
			UPDATE rentals
			SET status = 'COMPLETED',
			    version = version + 1,
			    updated_on = NOW()
			WHERE status = 'ACTIVE'
			  AND end_date < $1
			RETURNING id, borrower_id, product_id, end_date
		`

		rows, err := jr.db.QueryContext(ctx, query, time.Now().UTC().Format("2006-01-02"))
		if err != nil {
			logger.Error("Failed to complete lapsed rentals", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				rentalID   int64
				borrowerID int64
				productID  int64
				endDate    string
			)
			if err := rows.Scan(&rentalID, &borrowerID, &productID, &endDate); err != nil {
				logger.Error("Failed to scan lapsed rental", "error", err)
				continue
			}
			count++

			note := &domain.Notification{
				UserID:    borrowerID,
				Type:      domain.NotificationRentalCompleted,
				Content:   "Your rental is complete",
				RelatedID: rentalID,
				DedupeKey: fmt.Sprintf("rental_completed:rental:%d", rentalID),
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Error("Failed to record completion notification",
					"rental_id", rentalID, "error", err)
			}

			logger.Debug("Completed lapsed rental",
				"rental_id", rentalID,
				"borrower_id", borrowerID,
				"product_id", productID,
				"end_date", endDate)
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating lapsed rentals", "error", err)
			return
		}

		logger.Info("Completed lapsed rentals", "count", count)
	})
}

// SendEndDateReminders notifies borrowers whose active rentals end within the
// next two days, so they can return the item or request an extension in time.
func (jr *JobRunner) SendEndDateReminders() {
	jr.runWithRecovery("SendEndDateReminders", func() {
		ctx := context.Background()

		query := `
			SELECT id, borrower_id, end_date
			FROM rentals
			WHERE status = 'ACTIVE'
			  AND end_date >= $1
			  AND end_date <= $2
		`

		today := time.Now().UTC()
		rows, err := jr.db.QueryContext(ctx, query,
			today.Format("2006-01-02"),
			today.AddDate(0, 0, 2).Format("2006-01-02"))
		if err != nil {
			logger.Error("Failed to query rentals ending soon", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				rentalID   int64
				borrowerID int64
				endDate    time.Time
			)
			if err := rows.Scan(&rentalID, &borrowerID, &endDate); err != nil {
				logger.Error("Failed to scan ending rental", "error", err)
				continue
			}

			// Dedupe key includes the end date so a later extension
			// re-arms the reminder.
			note := &domain.Notification{
				UserID:    borrowerID,
				Type:      domain.NotificationEndDateReminder,
				Content:   fmt.Sprintf("Your rental ends on %s", endDate.Format("2006-01-02")),
				RelatedID: rentalID,
				DedupeKey: fmt.Sprintf("end_date_reminder:rental:%d:%s", rentalID, endDate.Format("2006-01-02")),
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Error("Failed to record end date reminder",
					"rental_id", rentalID, "error", err)
				continue
			}
			count++
		}

		if err := rows.Err(); err != nil {
			logger.Error("Error iterating ending rentals", "error", err)
			return
		}

		logger.Info("Sent end date reminders", "count", count)
	})
}
