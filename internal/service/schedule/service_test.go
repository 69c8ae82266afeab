package schedule

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/roster"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/apperr"
	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/tuition-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = user.Actor{UserID: "admin-1", Role: user.RoleAdmin}

type fixture struct {
	store *memory.Store
	svc   schedule.ScheduleService
}

func newFixture() fixture {
	store := memory.NewStore()
	tutor := "tutor-1"
	store.AddClass(roster.Class{ID: "class-1", Name: "Grade 9"})
	store.AddClass(roster.Class{ID: "class-2", Name: "Grade 10"})
	store.AddTutor(roster.Tutor{ID: "tutor-1", FullName: "Ana", BaseSalary: decimal.NewFromInt(50000), IsActive: true})
	store.AddTutor(roster.Tutor{ID: "tutor-2", FullName: "Budi", BaseSalary: decimal.NewFromInt(40000), IsActive: true})
	store.AddSubject(roster.Subject{ID: "math", ClassID: "class-1", Name: "Math", TutorID: &tutor, MonthlyFee: decimal.NewFromInt(1000)})
	store.AddSubject(roster.Subject{ID: "art", ClassID: "class-1", Name: "Art", MonthlyFee: decimal.NewFromInt(800)})

	return fixture{
		store: store,
		svc:   NewScheduleService(memory.NewScheduleRepository(store), memory.NewRosterRepository(store), nil),
	}
}

func validCreate() schedule.CreateScheduleRequest {
	return schedule.CreateScheduleRequest{
		ClassID:   "class-1",
		SubjectID: "math",
		TutorID:   "tutor-1",
		Date:      "2024-03-11",
		StartTime: "09:00",
		EndTime:   "10:30",
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	return verrs.ToMap()
}

func TestCreateSchedule_DefaultsToUpcoming(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreateSchedule(context.Background(), admin, validCreate())
	require.NoError(t, err)
	assert.Equal(t, "Upcoming", resp.Status)
	assert.Equal(t, "2024-03-11", resp.Date)
	assert.Equal(t, "09:00", resp.StartTime)
	require.NotNil(t, resp.CreatedBy)
	assert.Equal(t, "admin-1", *resp.CreatedBy)
}

func TestCreateSchedule_EndBeforeStartIsRejected(t *testing.T) {
	f := newFixture()
	req := validCreate()
	req.StartTime, req.EndTime = "09:00", "08:00"

	_, err := f.svc.CreateSchedule(context.Background(), admin, req)
	assert.Contains(t, fieldErrors(t, err), "end_time")

	req.EndTime = "09:00"
	_, err = f.svc.CreateSchedule(context.Background(), admin, req)
	assert.Contains(t, fieldErrors(t, err), "end_time", "equal start and end is an empty window")
}

func TestCreateSchedule_ReferenceChecks(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*schedule.CreateScheduleRequest)
		field string
	}{
		{"unknown class", func(r *schedule.CreateScheduleRequest) { r.ClassID = "nope" }, "class_id"},
		{"unknown subject", func(r *schedule.CreateScheduleRequest) { r.SubjectID = "nope" }, "subject_id"},
		{"unknown tutor", func(r *schedule.CreateScheduleRequest) { r.TutorID = "nope" }, "tutor_id"},
		{"subject from another class", func(r *schedule.CreateScheduleRequest) { r.ClassID = "class-2" }, "subject_id"},
		{"tutor differs from assigned tutor", func(r *schedule.CreateScheduleRequest) { r.TutorID = "tutor-2" }, "tutor_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validCreate()
			tt.edit(&req)

			_, err := f.svc.CreateSchedule(context.Background(), admin, req)
			assert.Contains(t, fieldErrors(t, err), tt.field)
		})
	}
}

func TestCreateSchedule_SubjectWithoutAssignedTutorAcceptsAnyTutor(t *testing.T) {
	f := newFixture()
	req := validCreate()
	req.SubjectID, req.TutorID = "art", "tutor-2"

	_, err := f.svc.CreateSchedule(context.Background(), admin, req)
	assert.NoError(t, err)
}

func TestCreateSchedule_RequiresActor(t *testing.T) {
	f := newFixture()
	_, err := f.svc.CreateSchedule(context.Background(), user.Actor{}, validCreate())
	assert.ErrorIs(t, err, user.ErrActorRequired)
}

func TestUpdateSchedule_StatusTransitions(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	created, err := f.svc.CreateSchedule(ctx, admin, validCreate())
	require.NoError(t, err)

	status := func(s string) schedule.UpdateScheduleRequest {
		return schedule.UpdateScheduleRequest{ID: created.ID, Status: &s}
	}

	resp, err := f.svc.UpdateSchedule(ctx, admin, status("Postponed"))
	require.NoError(t, err)
	assert.Equal(t, "Postponed", resp.Status)

	_, err = f.svc.UpdateSchedule(ctx, admin, status("Completed"))
	assert.True(t, apperr.IsInvalidState(err), "postponed sessions must be re-opened first")

	resp, err = f.svc.UpdateSchedule(ctx, admin, status("Upcoming"))
	require.NoError(t, err)
	assert.Equal(t, "Upcoming", resp.Status)

	resp, err = f.svc.UpdateSchedule(ctx, admin, status("Completed"))
	require.NoError(t, err)
	assert.Equal(t, "Completed", resp.Status)

	_, err = f.svc.UpdateSchedule(ctx, admin, status("Cancelled"))
	assert.ErrorIs(t, err, schedule.ErrInvalidTransition)

	resp, err = f.svc.UpdateSchedule(ctx, admin, status("Upcoming"))
	require.NoError(t, err, "an admin may re-open a completed session")
	assert.Equal(t, "Upcoming", resp.Status)
}

func TestUpdateSchedule_WindowCheckedOnMergedValues(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	created, err := f.svc.CreateSchedule(ctx, admin, validCreate())
	require.NoError(t, err)

	end := "08:30"
	_, err = f.svc.UpdateSchedule(ctx, admin, schedule.UpdateScheduleRequest{ID: created.ID, EndTime: &end})
	assert.Contains(t, fieldErrors(t, err), "end_time")

	got, err := f.svc.GetSchedule(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "10:30", got.EndTime, "failed update leaves the schedule untouched")

	start, room := "07:45", "B-2"
	resp, err := f.svc.UpdateSchedule(ctx, admin, schedule.UpdateScheduleRequest{ID: created.ID, StartTime: &start, EndTime: &end, Room: &room})
	require.NoError(t, err)
	assert.Equal(t, "07:45", resp.StartTime)
	assert.Equal(t, "08:30", resp.EndTime)
	assert.Equal(t, "B-2", *resp.Room)
}

func TestUpdateSchedule_TutorMustMatchSubject(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	created, err := f.svc.CreateSchedule(ctx, admin, validCreate())
	require.NoError(t, err)

	other := "tutor-2"
	_, err = f.svc.UpdateSchedule(ctx, admin, schedule.UpdateScheduleRequest{ID: created.ID, TutorID: &other})
	assert.Contains(t, fieldErrors(t, err), "tutor_id")
}

func TestDeleteSchedule_CascadesAttendance(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	created, err := f.svc.CreateSchedule(ctx, admin, validCreate())
	require.NoError(t, err)

	records := memory.NewAttendanceRepository(f.store)
	_, err = records.Mark(ctx, created.ID, []attendance.Record{{StudentID: "st-1", Status: attendance.StatusPresent}})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteSchedule(ctx, admin, created.ID))

	_, err = f.svc.GetSchedule(ctx, created.ID)
	assert.ErrorIs(t, err, schedule.ErrScheduleNotFound)
	_, err = records.ListBySchedule(ctx, created.ID)
	assert.ErrorIs(t, err, schedule.ErrScheduleNotFound)

	err = f.svc.DeleteSchedule(ctx, admin, created.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestListSchedules_FiltersAndPages(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	for _, d := range []string{"2024-03-11", "2024-03-12", "2024-03-13", "2024-04-01"} {
		req := validCreate()
		req.Date = d
		_, err := f.svc.CreateSchedule(ctx, admin, req)
		require.NoError(t, err)
	}

	from, to := "2024-03-01", "2024-03-31"
	resp, err := f.svc.ListSchedules(ctx, schedule.ScheduleFilter{From: &from, To: &to, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.TotalCount)
	assert.Equal(t, 2, resp.TotalPages)
	require.Len(t, resp.Schedules, 2)
	assert.Equal(t, "2024-03-11", resp.Schedules[0].Date)

	resp, err = f.svc.ListSchedules(ctx, schedule.ScheduleFilter{From: &from, To: &to, Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, resp.Schedules, 1)
	assert.Equal(t, "2024-03-13", resp.Schedules[0].Date)

	_, err = f.svc.ListSchedules(ctx, schedule.ScheduleFilter{From: &to, To: &from})
	assert.Contains(t, fieldErrors(t, err), "to")
}
