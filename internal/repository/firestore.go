package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	usersCollection         = "users"
	classesCollection       = "classes"
	subjectsCollection      = "subjects"
	studentsCollection      = "students"
	homeworksCollection     = "homeworks"
	announcementsCollection = "announcements"
	chatsCollection         = "chats"
	messagesCollection      = "messages"
)

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// getDoc reads a single document into a new T, mapping a missing document
// to ErrNotFound.
func getDoc[T any](ctx context.Context, ref *firestore.DocumentRef, setID func(*T, string)) (*T, error) {
	doc, err := ref.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return decode(doc, setID)
}

func decode[T any](doc *firestore.DocumentSnapshot, setID func(*T, string)) (*T, error) {
	var v T
	if err := doc.DataTo(&v); err != nil {
		return nil, err
	}
	if setID != nil {
		setID(&v, doc.Ref.ID)
	}
	return &v, nil
}

// readAll drains iter. Documents that fail to decode are skipped.
func readAll[T any](iter *firestore.DocumentIterator, setID func(*T, string)) ([]*T, error) {
	defer iter.Stop()

	items := []*T{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		v, err := decode(doc, setID)
		if err != nil {
			continue
		}
		items = append(items, v)
	}

	return items, nil
}

// watch runs fn for every snapshot of q until ctx is done or fn fails.
func watch[T any](ctx context.Context, q firestore.Query, setID func(*T, string), fn func([]*T) error) error {
	snaps := q.Snapshots(ctx)
	defer snaps.Stop()

	for {
		snap, err := snaps.Next()
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return err
		}

		items, err := readAll(snap.Documents, setID)
		if err != nil {
			return err
		}
		if err := fn(items); err != nil {
			return err
		}
	}
}
