package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	service "github.com/okian/pathwise/internal/app"
	"github.com/okian/pathwise/internal/domain/compensation"
	"github.com/okian/pathwise/internal/domain/model"
	"github.com/okian/pathwise/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const customDataset = `
fresher_role: "Fresher"
it_roles: ["Go Developer", "Rust Developer"]
non_it_roles: ["Barista"]
roles:
  - name: "Fresher"
  - name: "Barista"
    average: 250000
  - name: "Go Developer"
    entry: 500000
    average: 1500000
    experienced: 2500000
    source: "Internal survey"
  - name: "Rust Developer"
    entry: 600000
generic_courses:
  - name: "Tour of Go"
    url: "https://go.dev/tour"
`

func TestService_CustomDataset(t *testing.T) {
	Convey("Given a dataset file on disk", t, func() {
		path := filepath.Join(t.TempDir(), "roles.yaml")
		So(os.WriteFile(path, []byte(customDataset), 0o600), ShouldBeNil)

		svc := service.New(service.WithLogger(logger.NewNop()), service.WithDatasetPath(path))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("When a barista becomes a Go developer", func() {
			sum, err := svc.Summary(context.Background(), service.SummaryRequest{
				CurrentRole:         "Barista",
				TargetRole:          "Go Developer",
				CurrentCompensation: 250000,
			})

			Convey("Then the custom figures and fallback courses are used", func() {
				So(err, ShouldBeNil)
				So(sum.Result.TransitionType, ShouldEqual, model.NonItToIt)
				So(sum.Result.ExpectedCompensation, ShouldEqual, 500000)
				So(sum.Text, ShouldContainSubstring, "Recommended Courses: Tour of Go")
				So(svc.GetStats()["roles"], ShouldEqual, 4)
			})
		})
	})

	Convey("Given a preloaded table", t, func() {
		table, err := compensation.Load(context.Background(), compensation.WithDatasetBytes([]byte(customDataset)))
		So(err, ShouldBeNil)
		svc := service.New(service.WithLogger(logger.NewNop()), service.WithTable(table),
			service.WithHikePercent(model.ItToIt, 50))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("When projecting with an overridden hike", func() {
			a, err := svc.Assess(context.Background(), model.ProjectionInput{
				CurrentRole: "Go Developer", TargetRole: "go developer", CurrentCompensation: 800000,
			})

			Convey("Then the same role is treated as upskilling, not an IT move", func() {
				So(err, ShouldBeNil)
				So(a.TransitionType, ShouldEqual, model.SameDomain)
				So(a.ExpectedCompensation, ShouldEqual, 1080000)
			})
		})

		Convey("When the target has an entry figure but no average", func() {
			a, err := svc.Assess(context.Background(), model.ProjectionInput{
				CurrentRole: "Go Developer", TargetRole: "Rust Developer", CurrentCompensation: 800000,
			})

			Convey("Then the projection is incomplete but guidance is still returned", func() {
				So(errors.Is(err, model.ErrIncompleteInput), ShouldBeTrue)
				So(a.TransitionType, ShouldEqual, model.ItToIt)
				So(a.ExpectedCompensation, ShouldEqual, 0)
				So(a.Guidance, ShouldNotBeNil)
				So(a.Guidance.Scenarios, ShouldHaveLength, 3)
				So(a.Guidance.Scenarios[0].Compensation, ShouldEqual, 880000)
				So(a.Guidance.Scenarios[2].Compensation, ShouldEqual, 1040000)
			})
		})
	})
}

func TestService_Concurrent(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := started()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When many goroutines use it at once", func() {
			const workers = 32
			var wg sync.WaitGroup
			errs := make(chan error, workers*3)
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					if _, err := svc.Assess(ctx, model.ProjectionInput{CurrentRole: "Teacher", TargetRole: "GenAI Engineer"}); err != nil {
						errs <- err
					}
					years := i % 10
					if _, err := svc.Simulate(ctx, service.SimulationRequest{Years: &years}); err != nil {
						errs <- err
					}
					if _, err := svc.EvaluateROI(ctx, service.ROIRequest{CurrentRole: "Teacher", TargetRole: "GenAI Engineer", CurrentCompensation: 350000}); err != nil {
						errs <- err
					}
				}(i)
			}
			wg.Wait()
			close(errs)

			Convey("Then every call succeeds and is counted", func() {
				for err := range errs {
					So(err, ShouldBeNil)
				}
				stats := svc.GetStats()
				So(stats["assessments"], ShouldEqual, workers)
				So(stats["simulations"], ShouldEqual, workers)
				So(stats["roiEvaluations"], ShouldEqual, workers)
			})
		})
	})
}
