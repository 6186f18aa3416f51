package board_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"campusboard/internal/board"
	"campusboard/internal/database"
)

func TestJobCreateStartsPending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	employer := seedUser(t, env.db, "employer@example.com", database.RoleEmployer)

	job, err := env.jobs.Create(ctx, actorFor(employer), validJobInput())
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if job.Status != database.JobPending {
		t.Fatalf("expected pending status, got %s", job.Status)
	}
	if job.EmployerID != employer.ID {
		t.Fatalf("expected employer %d, got %d", employer.ID, job.EmployerID)
	}
	if !job.CreatedAt.Equal(testNow) || !job.UpdatedAt.Equal(testNow) {
		t.Fatalf("expected injected timestamps, got %s / %s", job.CreatedAt, job.UpdatedAt)
	}
}

func TestJobCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	employer := seedUser(t, env.db, "employer@example.com", database.RoleEmployer)

	cases := []struct {
		name  string
		in    board.JobInput
		field string
	}{
		{"title too short", board.JobInput{Title: "ab", Description: "desc"}, "title"},
		{"title too long", board.JobInput{Title: strings.Repeat("x", 101), Description: "desc"}, "title"},
		{"blank description", board.JobInput{Title: "Intern", Description: "   "}, "description"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.jobs.Create(ctx, actorFor(employer), tc.in)
			mustKind(t, err, board.KindValidation)
			var be *board.Error
			if !errors.As(err, &be) {
				t.Fatalf("expected board error, got %v", err)
			}
			if _, ok := be.Fields[tc.field]; !ok {
				t.Fatalf("expected field detail for %q, got %v", tc.field, be.Fields)
			}
		})
	}

	// 3 字符标题是下界，恰好合法。
	if _, err := env.jobs.Create(ctx, actorFor(employer), board.JobInput{Title: "Dev", Description: "d"}); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
}

// 标题长度按字符而非字节计数：40 个汉字（UTF-8 下 120 字节）合法。
func TestJobCreateMultibyteTitle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	employer := seedUser(t, env.db, "employer@example.com", database.RoleEmployer)

	title := strings.Repeat("校园兼职岗位", 6) + "火热招聘"
	if n := utf8.RuneCountInString(title); n != 40 {
		t.Fatalf("fixture drift: expected 40 runes, got %d", n)
	}
	job, err := env.jobs.Create(ctx, actorFor(employer), board.JobInput{
		Title:       title,
		Description: "面向在校学生的兼职岗位。",
	})
	if err != nil {
		t.Fatalf("create multibyte title: %v", err)
	}
	if job.Title != title {
		t.Fatalf("title mangled: %q", job.Title)
	}

	// 上界同样按字符：100 个汉字合法，101 个不合法。
	if _, err := env.jobs.Create(ctx, actorFor(employer), board.JobInput{
		Title:       strings.Repeat("岗", 100),
		Description: "d",
	}); err != nil {
		t.Fatalf("100-rune title should pass: %v", err)
	}
	_, err = env.jobs.Create(ctx, actorFor(employer), board.JobInput{
		Title:       strings.Repeat("岗", 101),
		Description: "d",
	})
	mustKind(t, err, board.KindValidation)
}

func TestJobCreateDeniedForStudentAndAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	student := seedUser(t, env.db, "student@example.com", database.RoleStudent)
	admin := seedUser(t, env.db, "admin@example.com", database.RoleAdmin)

	_, err := env.jobs.Create(ctx, actorFor(student), validJobInput())
	mustKind(t, err, board.KindUnauthorized)

	_, err = env.jobs.Create(ctx, actorFor(admin), validJobInput())
	mustKind(t, err, board.KindUnauthorized)
}

func TestJobModeration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	employer := seedUser(t, env.db, "employer@example.com", database.RoleEmployer)
	admin := seedUser(t, env.db, "admin@example.com", database.RoleAdmin)

	job, err := env.jobs.Create(ctx, actorFor(employer), validJobInput())
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	if _, err := env.jobs.Approve(ctx, actorFor(admin), job.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	got, err := env.jobs.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if got.Status != database.JobApproved {
		t.Fatalf("expected approved, got %s", got.Status)
	}

	// 幂等：重复 approve 是 no-op 成功。
	if _, err := env.jobs.Approve(ctx, actorFor(admin), job.ID); err != nil {
		t.Fatalf("repeat approve: %v", err)
	}

	// approve → reject 任意先前状态都允许。
	if _, err := env.jobs.Reject(ctx, actorFor(admin), job.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	got, err = env.jobs.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if got.Status != database.JobRejected {
		t.Fatalf("expected rejected, got %s", got.Status)
	}

	// rejected → approved 同样允许。
	if _, err := env.jobs.Approve(ctx, actorFor(admin), job.ID); err != nil {
		t.Fatalf("approve after reject: %v", err)
	}
}

func TestJobModerationDeniedForNonAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	employer := seedUser(t, env.db, "employer@example.com", database.RoleEmployer)
	student := seedUser(t, env.db, "student@example.com", database.RoleStudent)

	job, err := env.jobs.Create(ctx, actorFor(employer), validJobInput())
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	_, err = env.jobs.Approve(ctx, actorFor(student), job.ID)
	mustKind(t, err, board.KindUnauthorized)
	_, err = env.jobs.Reject(ctx, actorFor(student), job.ID)
	mustKind(t, err, board.KindUnauthorized)
	_, err = env.jobs.Approve(ctx, actorFor(employer), job.ID)
	mustKind(t, err, board.KindUnauthorized)
}

func TestJobModerationNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := seedUser(t, env.db, "admin@example.com", database.RoleAdmin)

	_, err := env.jobs.Approve(ctx, actorFor(admin), 9999)
	mustKind(t, err, board.KindNotFound)
}

func TestJobUpdateKeepsApprovedStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	employer := seedUser(t, env.db, "employer@example.com", database.RoleEmployer)
	admin := seedUser(t, env.db, "admin@example.com", database.RoleAdmin)

	job, err := env.jobs.Create(ctx, actorFor(employer), validJobInput())
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if _, err := env.jobs.Approve(ctx, actorFor(admin), job.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	in := validJobInput()
	in.Title = "Senior Campus Barista"
	updated, err := env.jobs.Update(ctx, actorFor(employer), job.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Senior Campus Barista" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}
	if updated.Status != database.JobApproved {
		t.Fatalf("content edit must not reset approval, got %s", updated.Status)
	}
}

func TestJobUpdateDeniedForOtherEmployer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := seedUser(t, env.db, "owner@example.com", database.RoleEmployer)
	other := seedUser(t, env.db, "other@example.com", database.RoleEmployer)

	job, err := env.jobs.Create(ctx, actorFor(owner), validJobInput())
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	_, err = env.jobs.Update(ctx, actorFor(other), job.ID, validJobInput())
	mustKind(t, err, board.KindUnauthorized)
	err = env.jobs.Delete(ctx, actorFor(other), job.ID)
	mustKind(t, err, board.KindUnauthorized)
}

func TestJobListApprovedFiltersStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	employer := seedUser(t, env.db, "employer@example.com", database.RoleEmployer)
	admin := seedUser(t, env.db, "admin@example.com", database.RoleAdmin)

	pending, err := env.jobs.Create(ctx, actorFor(employer), validJobInput())
	if err != nil {
		t.Fatalf("create pending: %v", err)
	}
	_ = pending

	in := validJobInput()
	in.Title = "Library Assistant"
	approved, err := env.jobs.Create(ctx, actorFor(employer), in)
	if err != nil {
		t.Fatalf("create approved: %v", err)
	}
	if _, err := env.jobs.Approve(ctx, actorFor(admin), approved.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	in.Title = "Night Porter"
	rejected, err := env.jobs.Create(ctx, actorFor(employer), in)
	if err != nil {
		t.Fatalf("create rejected: %v", err)
	}
	if _, err := env.jobs.Reject(ctx, actorFor(admin), rejected.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	jobs, err := env.jobs.ListApproved(ctx)
	if err != nil {
		t.Fatalf("list approved: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 approved job, got %d", len(jobs))
	}
	if jobs[0].ID != approved.ID || jobs[0].Status != database.JobApproved {
		t.Fatalf("unexpected job in approved listing: %+v", jobs[0])
	}
}

func TestJobListByStatusAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	employer := seedUser(t, env.db, "employer@example.com", database.RoleEmployer)
	admin := seedUser(t, env.db, "admin@example.com", database.RoleAdmin)

	if _, err := env.jobs.Create(ctx, actorFor(employer), validJobInput()); err != nil {
		t.Fatalf("create job: %v", err)
	}

	jobs, err := env.jobs.ListByStatus(ctx, actorFor(admin), database.JobPending)
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 pending job, got %d", len(jobs))
	}

	_, err = env.jobs.ListByStatus(ctx, actorFor(employer), database.JobPending)
	mustKind(t, err, board.KindUnauthorized)

	_, err = env.jobs.ListByStatus(ctx, actorFor(admin), database.JobStatus("draft"))
	mustKind(t, err, board.KindValidation)
}

func TestJobGetByIDNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.jobs.GetByID(context.Background(), 42)
	mustKind(t, err, board.KindNotFound)
}
