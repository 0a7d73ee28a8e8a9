package queue_test

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/alliancelab/warboard/internal/adapters/mq/queue"
)

func TestInMemoryQueue(t *testing.T) {
	Convey("Given an in-memory queue", t, func() {
		ctx := context.Background()

		Convey("When enqueuing within capacity", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(2))

			So(q.Enqueue(ctx, queue.Job{EventID: "ev-1"}), ShouldBeTrue)
			So(q.Enqueue(ctx, queue.Job{EventID: "ev-2"}), ShouldBeTrue)

			Convey("Then the length tracks pending jobs", func() {
				So(q.Len(ctx), ShouldEqual, 2)
			})

			Convey("And a further enqueue reports backpressure", func() {
				So(q.Enqueue(ctx, queue.Job{EventID: "ev-3"}), ShouldBeFalse)
			})
		})

		Convey("When dequeuing", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4))
			So(q.Enqueue(ctx, queue.Job{EventID: "ev-1"}), ShouldBeTrue)
			So(q.Enqueue(ctx, queue.Job{EventID: "ev-2"}), ShouldBeTrue)

			jobs := q.Dequeue(ctx)

			Convey("Then jobs arrive in FIFO order", func() {
				first := <-jobs
				second := <-jobs
				So(first.EventID, ShouldEqual, "ev-1")
				So(second.EventID, ShouldEqual, "ev-2")
			})
		})

		Convey("When the queue is closed", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4))
			So(q.Enqueue(ctx, queue.Job{EventID: "ev-1"}), ShouldBeTrue)
			So(q.Close(), ShouldBeNil)

			Convey("Then enqueue is rejected", func() {
				So(q.Enqueue(ctx, queue.Job{EventID: "ev-2"}), ShouldBeFalse)
			})

			Convey("Then pending jobs are still delivered before the channel closes", func() {
				jobs := q.Dequeue(ctx)
				job, ok := <-jobs
				So(ok, ShouldBeTrue)
				So(job.EventID, ShouldEqual, "ev-1")

				select {
				case _, ok := <-jobs:
					So(ok, ShouldBeFalse)
				case <-time.After(time.Second):
					So("dequeue channel did not close", ShouldBeEmpty)
				}
			})

			Convey("Then closing again is harmless", func() {
				So(q.Close(), ShouldBeNil)
			})
		})
	})
}
