package attendance

import "context"

type AttendanceService interface {
	// SaveAttendance normalises and upserts one day, resetting its approval.
	SaveAttendance(ctx context.Context, req SaveAttendanceRequest) (SaveAttendanceResponse, error)
	ListAttendance(ctx context.Context, req PairRequest) ([]AttendanceResponse, error)
	GetPeriodAttendance(ctx context.Context, periodID string) (PeriodAttendanceResponse, error)
	DeleteDay(ctx context.Context, req PairRequest) (DeleteResponse, error)
	// DeleteRecords hard deletes every row of the pair without approval checks.
	DeleteRecords(ctx context.Context, req PairRequest) (DeleteResponse, error)
}
