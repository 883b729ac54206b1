package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/minglehq/mingle/pkg/logger"
)

func init() {
	logger.Init("")
}

// runStoreContract exercises the Store behaviour every implementation
// must honor.
func runStoreContract(t *testing.T, name string, open func(t *testing.T) Store) {
	ctx := context.Background()

	Convey(fmt.Sprintf("Given an empty %s", name), t, func() {
		store := open(t)

		Convey("When a user is created", func() {
			u, err := store.CreateUser(ctx, "Alice", "alice@example.com", []string{"Hiking", "  jazz ", "hiking"})

			Convey("Then the user is returned with a fresh id", func() {
				So(err, ShouldBeNil)
				So(u.ID, ShouldNotBeEmpty)
				So(u.Name, ShouldEqual, "Alice")
				So(u.Contact, ShouldEqual, "alice@example.com")
				So(u.CreatedAt.IsZero(), ShouldBeFalse)
			})

			Convey("Then the user can be fetched by id", func() {
				got, err := store.GetUser(ctx, u.ID)
				So(err, ShouldBeNil)
				So(got.ID, ShouldEqual, u.ID)
				So(got.Name, ShouldEqual, "Alice")
			})

			Convey("Then the user can be fetched by contact", func() {
				got, err := store.GetUserByContact(ctx, "alice@example.com")
				So(err, ShouldBeNil)
				So(got.ID, ShouldEqual, u.ID)
			})

			Convey("Then interests are normalized and deduplicated", func() {
				set, err := store.InterestsOf(ctx, u.ID)
				So(err, ShouldBeNil)
				So(set, ShouldHaveLength, 2)
				So(set, ShouldContainKey, "hiking")
				So(set, ShouldContainKey, "jazz")
			})

			Convey("And a second user reuses the contact", func() {
				_, err := store.CreateUser(ctx, "Mallory", "alice@example.com", nil)

				Convey("Then creation fails with ErrDuplicateContact", func() {
					So(errors.Is(err, ErrDuplicateContact), ShouldBeTrue)
				})

				Convey("Then the original user is untouched", func() {
					got, err := store.GetUserByContact(ctx, "alice@example.com")
					So(err, ShouldBeNil)
					So(got.Name, ShouldEqual, "Alice")
					So(store.CountUsers(ctx), ShouldEqual, 1)
				})
			})
		})

		Convey("When an unknown user is looked up", func() {
			_, err := store.GetUser(ctx, "nope")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)

			_, err = store.GetUserByContact(ctx, "nobody@example.com")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)

			_, err = store.InterestsOf(ctx, "nope")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)

			_, err = store.FriendCount(ctx, "nope")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("When interests are added later", func() {
			u, err := store.CreateUser(ctx, "Bob", "bob@example.com", []string{"chess"})
			So(err, ShouldBeNil)

			So(store.AddInterests(ctx, u.ID, []string{"Chess", "cycling"}), ShouldBeNil)

			Convey("Then the set is the merged union", func() {
				set, err := store.InterestsOf(ctx, u.ID)
				So(err, ShouldBeNil)
				So(set, ShouldHaveLength, 2)
				So(set, ShouldContainKey, "chess")
				So(set, ShouldContainKey, "cycling")
			})

			Convey("Then adding to an unknown user fails", func() {
				err := store.AddInterests(ctx, "nope", []string{"chess"})
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When friendships are created", func() {
			a, _ := store.CreateUser(ctx, "Ann", "ann@example.com", nil)
			b, _ := store.CreateUser(ctx, "Ben", "ben@example.com", nil)
			c, _ := store.CreateUser(ctx, "Cam", "cam@example.com", nil)

			created, err := store.AddFriendship(ctx, a.ID, b.ID)
			So(err, ShouldBeNil)
			So(created, ShouldBeTrue)
			created, err = store.AddFriendship(ctx, b.ID, c.ID)
			So(err, ShouldBeNil)
			So(created, ShouldBeTrue)

			Convey("Then friend counts reflect both directions", func() {
				n, err := store.FriendCount(ctx, a.ID)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)

				n, err = store.FriendCount(ctx, b.ID)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 2)
			})

			Convey("Then each pair is listed exactly once, in canonical order", func() {
				edges, err := store.ListFriendEdges(ctx)
				So(err, ShouldBeNil)
				So(edges, ShouldHaveLength, 2)
				for _, e := range edges {
					So(e.UserID, ShouldBeLessThan, e.FriendID)
				}
			})

			Convey("Then re-adding the same pair is a no-op", func() {
				again, err := store.AddFriendship(ctx, b.ID, a.ID)
				So(err, ShouldBeNil)
				So(again, ShouldBeFalse)

				edges, err := store.ListFriendEdges(ctx)
				So(err, ShouldBeNil)
				So(edges, ShouldHaveLength, 2)
			})

			Convey("Then self-friendship is rejected", func() {
				_, err := store.AddFriendship(ctx, a.ID, a.ID)
				So(errors.Is(err, ErrSelfFriendship), ShouldBeTrue)
			})

			Convey("Then friendships with unknown users are rejected", func() {
				_, err := store.AddFriendship(ctx, a.ID, "nope")
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)

				_, err = store.AddFriendship(ctx, "nope", a.ID)
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When users are listed", func() {
			_, _ = store.CreateUser(ctx, "Ann", "ann@example.com", nil)
			_, _ = store.CreateUser(ctx, "Ben", "ben@example.com", nil)

			users, err := store.ListUsers(ctx)
			So(err, ShouldBeNil)
			So(users, ShouldHaveLength, 2)
			So(store.CountUsers(ctx), ShouldEqual, 2)
		})
	})
}

func TestMemStore(t *testing.T) {
	runStoreContract(t, "MemStore", func(t *testing.T) Store {
		return NewMemStore()
	})
}

func TestBadgerStore(t *testing.T) {
	runStoreContract(t, "BadgerStore", func(t *testing.T) Store {
		store, err := OpenBadgerStore(t.TempDir())
		if err != nil {
			t.Fatalf("open badger store: %v", err)
		}
		t.Cleanup(func() { _ = store.Close() })
		return store
	})
}

func TestBadgerStorePersistence(t *testing.T) {
	ctx := context.Background()

	Convey("Given a BadgerStore that has been closed and reopened", t, func() {
		dir := t.TempDir()

		store, err := OpenBadgerStore(dir)
		So(err, ShouldBeNil)

		a, err := store.CreateUser(ctx, "Ann", "ann@example.com", []string{"hiking"})
		So(err, ShouldBeNil)
		b, err := store.CreateUser(ctx, "Ben", "ben@example.com", nil)
		So(err, ShouldBeNil)
		_, err = store.AddFriendship(ctx, a.ID, b.ID)
		So(err, ShouldBeNil)
		So(store.Close(), ShouldBeNil)

		reopened, err := OpenBadgerStore(dir)
		So(err, ShouldBeNil)
		defer reopened.Close()

		Convey("Then users, interests and friendships survive the restart", func() {
			got, err := reopened.GetUser(ctx, a.ID)
			So(err, ShouldBeNil)
			So(got.Name, ShouldEqual, "Ann")

			set, err := reopened.InterestsOf(ctx, a.ID)
			So(err, ShouldBeNil)
			So(set, ShouldContainKey, "hiking")

			edges, err := reopened.ListFriendEdges(ctx)
			So(err, ShouldBeNil)
			So(edges, ShouldHaveLength, 1)
		})
	})
}
