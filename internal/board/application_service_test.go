package board_test

import (
	"context"
	"sync"
	"testing"

	"campusboard/internal/board"
	"campusboard/internal/database"
)

// approvedJob 建一个已过审的岗位，供投递类用例复用。
func approvedJob(t *testing.T, env *testEnv, employer database.User) *database.Job {
	t.Helper()
	ctx := context.Background()
	admin := seedUser(t, env.db, "moderator@example.com", database.RoleAdmin)
	job, err := env.jobs.Create(ctx, actorFor(employer), validJobInput())
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if _, err := env.jobs.Approve(ctx, actorFor(admin), job.ID); err != nil {
		t.Fatalf("approve job: %v", err)
	}
	return job
}

func TestApply(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	employer := seedUser(t, env.db, "employer@example.com", database.RoleEmployer)
	student := seedUser(t, env.db, "student@example.com", database.RoleStudent)
	job := approvedJob(t, env, employer)

	app, err := env.apps.Apply(ctx, actorFor(student), job.ID)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if app.Status != database.ApplicationSubmitted {
		t.Fatalf("expected submitted, got %s", app.Status)
	}
	if app.JobID != job.ID || app.StudentID != student.ID {
		t.Fatalf("unexpected application: %+v", app)
	}
	if !app.AppliedAt.Equal(testNow) {
		t.Fatalf("expected injected applied_at, got %s", app.AppliedAt)
	}
}

func TestApplyRequiresApprovedJob(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	employer := seedUser(t, env.db, "employer@example.com", database.RoleEmployer)
	student := seedUser(t, env.db, "student@example.com", database.RoleStudent)
	admin := seedUser(t, env.db, "admin@example.com", database.RoleAdmin)

	pending, err := env.jobs.Create(ctx, actorFor(employer), validJobInput())
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	_, err = env.apps.Apply(ctx, actorFor(student), pending.ID)
	mustKind(t, err, board.KindValidation)

	if _, err := env.jobs.Reject(ctx, actorFor(admin), pending.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	_, err = env.apps.Apply(ctx, actorFor(student), pending.ID)
	mustKind(t, err, board.KindValidation)
}

func TestApplyDeniedForNonStudent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	employer := seedUser(t, env.db, "employer@example.com", database.RoleEmployer)
	job := approvedJob(t, env, employer)

	_, err := env.apps.Apply(ctx, actorFor(employer), job.ID)
	mustKind(t, err, board.KindUnauthorized)
}

func TestApplyJobNotFound(t *testing.T) {
	env := newTestEnv(t)
	student := seedUser(t, env.db, "student@example.com", database.RoleStudent)

	_, err := env.apps.Apply(context.Background(), actorFor(student), 404)
	mustKind(t, err, board.KindNotFound)
}

func TestApplyDuplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	employer := seedUser(t, env.db, "employer@example.com", database.RoleEmployer)
	student := seedUser(t, env.db, "student@example.com", database.RoleStudent)
	job := approvedJob(t, env, employer)

	if _, err := env.apps.Apply(ctx, actorFor(student), job.ID); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	_, err := env.apps.Apply(ctx, actorFor(student), job.ID)
	mustKind(t, err, board.KindDuplicate)

	var count int64
	if err := env.db.Model(&database.JobApplication{}).Where("job_id = ?", job.ID).Count(&count).Error; err != nil {
		t.Fatalf("count applications: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 row, got %d", count)
	}
}

// 并发投递同一岗位，唯一索引保证恰好一条成功。
func TestApplyConcurrent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	employer := seedUser(t, env.db, "employer@example.com", database.RoleEmployer)
	student := seedUser(t, env.db, "student@example.com", database.RoleStudent)
	job := approvedJob(t, env, employer)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.apps.Apply(ctx, actorFor(student), job.ID)
		}(i)
	}
	wg.Wait()

	var succeeded, duplicated int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case board.IsKind(err, board.KindDuplicate):
			duplicated++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || duplicated != attempts-1 {
		t.Fatalf("expected 1 success and %d duplicates, got %d / %d", attempts-1, succeeded, duplicated)
	}

	var count int64
	if err := env.db.Model(&database.JobApplication{}).Where("job_id = ?", job.ID).Count(&count).Error; err != nil {
		t.Fatalf("count applications: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 row, got %d", count)
	}
}

func TestListForJobOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := seedUser(t, env.db, "owner@example.com", database.RoleEmployer)
	other := seedUser(t, env.db, "other@example.com", database.RoleEmployer)
	student := seedUser(t, env.db, "student@example.com", database.RoleStudent)
	job := approvedJob(t, env, owner)

	if _, err := env.apps.Apply(ctx, actorFor(student), job.ID); err != nil {
		t.Fatalf("apply: %v", err)
	}

	apps, err := env.apps.ListForJob(ctx, actorFor(owner), job.ID)
	if err != nil {
		t.Fatalf("list for job: %v", err)
	}
	if len(apps) != 1 || apps[0].StudentID != student.ID {
		t.Fatalf("unexpected applications: %+v", apps)
	}

	_, err = env.apps.ListForJob(ctx, actorFor(other), job.ID)
	mustKind(t, err, board.KindUnauthorized)
	_, err = env.apps.ListForJob(ctx, actorFor(student), job.ID)
	mustKind(t, err, board.KindUnauthorized)
}

func TestDeleteJobCascadesApplications(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := seedUser(t, env.db, "owner@example.com", database.RoleEmployer)
	student := seedUser(t, env.db, "student@example.com", database.RoleStudent)
	job := approvedJob(t, env, owner)

	if _, err := env.apps.Apply(ctx, actorFor(student), job.ID); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := env.jobs.Delete(ctx, actorFor(owner), job.ID); err != nil {
		t.Fatalf("delete job: %v", err)
	}

	_, err := env.apps.ListForJob(ctx, actorFor(owner), job.ID)
	mustKind(t, err, board.KindNotFound)

	var count int64
	if err := env.db.Model(&database.JobApplication{}).Where("job_id = ?", job.ID).Count(&count).Error; err != nil {
		t.Fatalf("count applications: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected applications to cascade, found %d rows", count)
	}
}

func TestListForStudent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	employer := seedUser(t, env.db, "employer@example.com", database.RoleEmployer)
	alice := seedUser(t, env.db, "alice@example.com", database.RoleStudent)
	bob := seedUser(t, env.db, "bob@example.com", database.RoleStudent)
	job := approvedJob(t, env, employer)

	if _, err := env.apps.Apply(ctx, actorFor(alice), job.ID); err != nil {
		t.Fatalf("alice apply: %v", err)
	}
	if _, err := env.apps.Apply(ctx, actorFor(bob), job.ID); err != nil {
		t.Fatalf("bob apply: %v", err)
	}

	apps, err := env.apps.ListForStudent(ctx, actorFor(alice))
	if err != nil {
		t.Fatalf("list for student: %v", err)
	}
	if len(apps) != 1 || apps[0].StudentID != alice.ID {
		t.Fatalf("expected only alice's application, got %+v", apps)
	}

	_, err = env.apps.ListForStudent(ctx, actorFor(employer))
	mustKind(t, err, board.KindUnauthorized)
}

func TestUpdateApplicationStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := seedUser(t, env.db, "owner@example.com", database.RoleEmployer)
	other := seedUser(t, env.db, "other@example.com", database.RoleEmployer)
	student := seedUser(t, env.db, "student@example.com", database.RoleStudent)
	job := approvedJob(t, env, owner)

	app, err := env.apps.Apply(ctx, actorFor(student), job.ID)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	updated, err := env.apps.UpdateStatus(ctx, actorFor(owner), app.ID, database.ApplicationAccepted)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != database.ApplicationAccepted {
		t.Fatalf("expected accepted, got %s", updated.Status)
	}

	_, err = env.apps.UpdateStatus(ctx, actorFor(other), app.ID, database.ApplicationRejected)
	mustKind(t, err, board.KindUnauthorized)

	// 只允许 accepted / rejected 两个终态。
	_, err = env.apps.UpdateStatus(ctx, actorFor(owner), app.ID, database.ApplicationSubmitted)
	mustKind(t, err, board.KindValidation)

	_, err = env.apps.UpdateStatus(ctx, actorFor(owner), 9999, database.ApplicationAccepted)
	mustKind(t, err, board.KindNotFound)
}
