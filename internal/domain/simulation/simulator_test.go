package simulation_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/pathwise/internal/domain/model"
	"github.com/okian/pathwise/internal/domain/simulation"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSimulate(t *testing.T) {
	Convey("Given a simulator with an 8% baseline raise", t, func() {
		sim := simulation.NewSimulator()
		So(sim.BaselineRaisePercent(), ShouldEqual, 8)

		Convey("When simulating 5 years with a 20% hike every 3 years", func() {
			res, err := sim.Simulate(simulation.Params{
				StartingCompensation: 600000,
				SwitchHikePercent:    20,
				Years:                5,
				SwitchIntervalYears:  3,
			})

			Convey("Then the switching trajectory applies the hike in year 3", func() {
				So(err, ShouldBeNil)
				So(res.TrajectoryWithSwitching, ShouldResemble, []float64{600000, 648000, 699840, 839808, 906993, 979552})
				So(res.SwitchYears, ShouldResemble, []int{3})
			})

			Convey("And the baseline trajectory compounds 8% every year", func() {
				So(res.TrajectoryNoSwitch, ShouldResemble, []float64{600000, 648000, 699840, 755827, 816293, 881597})
			})

			Convey("And totals count the salary earned before each raise", func() {
				So(res.TotalEarningsWithSwitching, ShouldAlmostEqual, 3694640.64, 1e-6)
				So(res.TotalEarningsNoSwitch, ShouldAlmostEqual, 3519960.576, 1e-6)
				So(res.ExtraGain, ShouldAlmostEqual, 174680.064, 1e-6)
			})
		})

		Convey("When years is zero", func() {
			res, err := sim.Simulate(simulation.Params{StartingCompensation: 500000.5, SwitchHikePercent: 30, SwitchIntervalYears: 2})

			Convey("Then both trajectories hold only the unrounded start", func() {
				So(err, ShouldBeNil)
				So(res.TrajectoryWithSwitching, ShouldResemble, []float64{500000.5})
				So(res.TrajectoryNoSwitch, ShouldResemble, []float64{500000.5})
				So(res.TotalEarningsWithSwitching, ShouldEqual, 0)
				So(res.TotalEarningsNoSwitch, ShouldEqual, 0)
				So(res.ExtraGain, ShouldEqual, 0)
			})
		})

		Convey("When the horizon is shorter than the switch interval", func() {
			res, err := sim.Simulate(simulation.Params{StartingCompensation: 700000, SwitchHikePercent: 40, Years: 2, SwitchIntervalYears: 3})

			Convey("Then both passes are identical", func() {
				So(err, ShouldBeNil)
				So(res.TrajectoryWithSwitching, ShouldResemble, res.TrajectoryNoSwitch)
				So(res.TotalEarningsWithSwitching, ShouldEqual, res.TotalEarningsNoSwitch)
				So(res.SwitchYears, ShouldBeEmpty)
			})
		})

		Convey("When simulating many parameter combinations", func() {
			Convey("Then trajectories grow strictly and have years+1 entries", func() {
				for years := 0; years <= 12; years++ {
					for interval := 1; interval <= 4; interval++ {
						res, err := sim.Simulate(simulation.Params{StartingCompensation: 450000, SwitchHikePercent: 25, Years: years, SwitchIntervalYears: interval})
						So(err, ShouldBeNil)
						So(res.TrajectoryWithSwitching, ShouldHaveLength, years+1)
						So(res.TrajectoryNoSwitch, ShouldHaveLength, years+1)
						for i := 1; i < len(res.TrajectoryNoSwitch); i++ {
							So(res.TrajectoryWithSwitching[i], ShouldBeGreaterThan, res.TrajectoryWithSwitching[i-1])
							So(res.TrajectoryNoSwitch[i], ShouldBeGreaterThan, res.TrajectoryNoSwitch[i-1])
						}
						if years > interval {
							So(res.TotalEarningsWithSwitching, ShouldBeGreaterThan, res.TotalEarningsNoSwitch)
						} else {
							So(res.TotalEarningsWithSwitching, ShouldEqual, res.TotalEarningsNoSwitch)
						}
					}
				}
			})
		})

		Convey("When the same input is simulated twice", func() {
			p := simulation.Params{StartingCompensation: 600000, SwitchHikePercent: 30, Years: 10, SwitchIntervalYears: 2}
			a, errA := sim.Simulate(p)
			b, errB := sim.Simulate(p)

			Convey("Then the results are identical", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(a, ShouldResemble, b)
			})
		})

		Convey("When parameters are invalid", func() {
			cases := []simulation.Params{
				{StartingCompensation: 600000, SwitchHikePercent: 20, Years: 5, SwitchIntervalYears: 0},
				{StartingCompensation: 600000, SwitchHikePercent: 20, Years: 5, SwitchIntervalYears: -2},
				{StartingCompensation: 600000, SwitchHikePercent: 20, Years: -1, SwitchIntervalYears: 2},
				{StartingCompensation: 600000, SwitchHikePercent: 20, Years: 51, SwitchIntervalYears: 2},
				{StartingCompensation: -1, SwitchHikePercent: 20, Years: 5, SwitchIntervalYears: 2},
				{StartingCompensation: math.Inf(1), SwitchHikePercent: 20, Years: 5, SwitchIntervalYears: 2},
				{StartingCompensation: 600000, SwitchHikePercent: math.NaN(), Years: 5, SwitchIntervalYears: 2},
				{StartingCompensation: 600000, SwitchHikePercent: -5, Years: 5, SwitchIntervalYears: 2},
			}

			Convey("Then each is rejected before iteration", func() {
				for _, p := range cases {
					res, err := sim.Simulate(p)
					So(errors.Is(err, model.ErrInvalidSimulation), ShouldBeTrue)
					So(res.TrajectoryWithSwitching, ShouldBeNil)
				}
			})
		})
	})

	Convey("Given a simulator with the older 5% baseline and a short horizon cap", t, func() {
		sim := simulation.NewSimulator(simulation.WithBaselineRaisePercent(5), simulation.WithMaxYears(10))

		Convey("When simulating within the cap", func() {
			res, err := sim.Simulate(simulation.Params{StartingCompensation: 100000, SwitchHikePercent: 30, Years: 2, SwitchIntervalYears: 2})

			Convey("Then the 5% raise is used", func() {
				So(err, ShouldBeNil)
				So(res.TrajectoryNoSwitch, ShouldResemble, []float64{100000, 105000, 110250})
				So(res.TrajectoryWithSwitching, ShouldResemble, []float64{100000, 105000, 136500})
				So(res.BaselineRaisePercent, ShouldEqual, 5)
			})
		})

		Convey("When exceeding the cap", func() {
			_, err := sim.Simulate(simulation.Params{StartingCompensation: 100000, SwitchHikePercent: 30, Years: 11, SwitchIntervalYears: 2})

			Convey("Then the request is rejected", func() {
				So(errors.Is(err, model.ErrInvalidSimulation), ShouldBeTrue)
			})
		})
	})
}

func TestCategories(t *testing.T) {
	Convey("Given the built-in salary categories", t, func() {
		Convey("When resolving starting values", func() {
			Convey("Then fresher is always fixed", func() {
				So(simulation.CategoryFresher.Start(900000), ShouldEqual, 350000)
				So(simulation.CategoryFresher.Start(0), ShouldEqual, 350000)
			})

			Convey("And zero selects the category default", func() {
				So(simulation.CategoryIT.Start(0), ShouldEqual, 600000)
				So(simulation.CategoryNonIT.Start(0), ShouldEqual, 400000)
			})

			Convey("And other values are clamped", func() {
				So(simulation.CategoryIT.Start(100000), ShouldEqual, 200000)
				So(simulation.CategoryIT.Start(9000000), ShouldEqual, 5000000)
				So(simulation.CategoryNonIT.Start(4000000), ShouldEqual, 3000000)
				So(simulation.CategoryNonIT.Start(750000), ShouldEqual, 750000)
			})
		})

		Convey("When looking up by name", func() {
			c, ok := simulation.LookupCategory(" non_it ")

			Convey("Then separators and case are ignored", func() {
				So(ok, ShouldBeTrue)
				So(c.Name, ShouldEqual, "Non-IT")
				_, ok = simulation.LookupCategory("Retired")
				So(ok, ShouldBeFalse)
			})
		})
	})
}
