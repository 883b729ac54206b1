package service

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/minglehq/mingle/internal/adapters/repository"
	"github.com/minglehq/mingle/internal/domain/graph"
	"github.com/minglehq/mingle/internal/domain/recommend"
	"github.com/minglehq/mingle/pkg/logger"
)

func init() {
	logger.Init("")
}

func startedService(t *testing.T, opts ...Option) *Service {
	t.Helper()

	svc := New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func TestServiceLifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new service", t, func() {
		svc := New()

		Convey("When it starts", func() {
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			Convey("Then starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("Then stats report an empty graph", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldBeTrue)
				So(stats["total_users"], ShouldEqual, 0)
				So(stats["graph_nodes"], ShouldEqual, 0)
				So(stats["graph_edges"], ShouldEqual, 0)
			})
		})
	})

	Convey("Given a service backed by a data directory", t, func() {
		svc := startedService(t, WithDataDir(t.TempDir()))

		Convey("When a user is created", func() {
			u, err := svc.CreateUser(ctx, "Alice", "alice@example.com", []string{"hiking"})
			So(err, ShouldBeNil)

			Convey("Then it is readable back", func() {
				got, err := svc.GetUser(ctx, u.ID)
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "Alice")
			})
		})
	})
}

func TestServiceUsersAndFriendships(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		svc := startedService(t)

		alice, err := svc.CreateUser(ctx, "Alice", "alice@example.com", []string{"Hiking", "jazz"})
		So(err, ShouldBeNil)
		bob, err := svc.CreateUser(ctx, "Bob", "bob@example.com", []string{"hiking"})
		So(err, ShouldBeNil)

		Convey("When a duplicate contact registers", func() {
			_, err := svc.CreateUser(ctx, "Mallory", "alice@example.com", nil)
			So(errors.Is(err, repository.ErrDuplicateContact), ShouldBeTrue)
		})

		Convey("When the profile is requested", func() {
			p, err := svc.Profile(ctx, alice.ID)
			So(err, ShouldBeNil)
			So(p.User.Name, ShouldEqual, "Alice")
			So(p.Interests, ShouldResemble, []string{"hiking", "jazz"})
			So(p.FriendCount, ShouldEqual, 0)
		})

		Convey("When users are listed", func() {
			users, err := svc.ListUsers(ctx)
			So(err, ShouldBeNil)
			So(users, ShouldHaveLength, 2)
		})

		Convey("When a friendship is added", func() {
			created, err := svc.AddFriendship(ctx, alice.ID, bob.ID)
			So(err, ShouldBeNil)
			So(created, ShouldBeTrue)

			Convey("Then the friend count grows", func() {
				p, err := svc.Profile(ctx, alice.ID)
				So(err, ShouldBeNil)
				So(p.FriendCount, ShouldEqual, 1)
			})

			Convey("Then adding it again reports no change", func() {
				again, err := svc.AddFriendship(ctx, bob.ID, alice.ID)
				So(err, ShouldBeNil)
				So(again, ShouldBeFalse)
			})

			Convey("Then self-friendship is rejected", func() {
				_, err := svc.AddFriendship(ctx, alice.ID, alice.ID)
				So(errors.Is(err, repository.ErrSelfFriendship), ShouldBeTrue)
			})
		})
	})
}

func TestServiceSnapshotDiscipline(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service with two users", t, func() {
		svc := startedService(t)

		alice, _ := svc.CreateUser(ctx, "Alice", "alice@example.com", []string{"hiking"})
		bob, _ := svc.CreateUser(ctx, "Bob", "bob@example.com", []string{"hiking"})

		Convey("When no refresh has happened", func() {
			Convey("Then scoring does not see the new users", func() {
				_, err := svc.Similarity(ctx, alice.ID, bob.ID)
				So(errors.Is(err, graph.ErrUnknownNode), ShouldBeTrue)

				_, err = svc.Recommend(ctx, alice.ID, 0)
				So(errors.Is(err, graph.ErrUnknownNode), ShouldBeTrue)
			})
		})

		Convey("When the graph is refreshed", func() {
			summary, err := svc.RefreshGraph(ctx)
			So(err, ShouldBeNil)
			So(summary.Nodes, ShouldEqual, 2)
			So(summary.Edges, ShouldEqual, 0)
			So(summary.BuiltAt.IsZero(), ShouldBeFalse)

			Convey("Then scoring sees the users", func() {
				sim, err := svc.Similarity(ctx, alice.ID, bob.ID)
				So(err, ShouldBeNil)
				So(sim.InterestSimilarity, ShouldEqual, 1.0)
				So(sim.CommonInterests, ShouldResemble, []string{"hiking"})
			})

			Convey("And a friendship added after the refresh", func() {
				_, err := svc.AddFriendship(ctx, alice.ID, bob.ID)
				So(err, ShouldBeNil)

				Convey("Then it stays invisible until the next refresh", func() {
					recs, err := svc.Recommend(ctx, alice.ID, 0)
					So(err, ShouldBeNil)
					So(recs, ShouldHaveLength, 1)
					So(recs[0].UserID, ShouldEqual, bob.ID)

					_, err = svc.RefreshGraph(ctx)
					So(err, ShouldBeNil)

					recs, err = svc.Recommend(ctx, alice.ID, 0)
					So(err, ShouldBeNil)
					So(recs, ShouldBeEmpty)
				})
			})
		})
	})
}

func TestServiceRecommendLimits(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service with a small max limit", t, func() {
		svc := startedService(t, WithDefaultLimit(2), WithMaxLimit(3))

		alice, _ := svc.CreateUser(ctx, "Alice", "alice@example.com", []string{"hiking"})
		for _, spec := range []struct{ name, contact string }{
			{"Bob", "bob@example.com"},
			{"Carol", "carol@example.com"},
			{"Dave", "dave@example.com"},
			{"Erin", "erin@example.com"},
			{"Frank", "frank@example.com"},
		} {
			_, err := svc.CreateUser(ctx, spec.name, spec.contact, []string{"hiking"})
			So(err, ShouldBeNil)
		}
		_, err := svc.RefreshGraph(ctx)
		So(err, ShouldBeNil)

		Convey("When no limit is given", func() {
			recs, err := svc.Recommend(ctx, alice.ID, 0)
			So(err, ShouldBeNil)
			So(recs, ShouldHaveLength, 2)
		})

		Convey("When the requested limit exceeds the maximum", func() {
			recs, err := svc.Recommend(ctx, alice.ID, 100)
			So(err, ShouldBeNil)
			So(recs, ShouldHaveLength, 3)
		})

		Convey("When the limit is negative", func() {
			_, err := svc.Recommend(ctx, alice.ID, -1)
			So(errors.Is(err, recommend.ErrInvalidLimit), ShouldBeTrue)
		})
	})
}
