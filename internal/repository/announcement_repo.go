package repository

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/ZigaLarissa/EduAssist/internal/models"
)

// arrayContainsAnyLimit is the number of values Firestore accepts in a
// single array-contains-any filter.
const arrayContainsAnyLimit = 10

func setAnnouncementID(a *models.Announcement, id string) { a.ID = id }

type AnnouncementRepository struct {
	client *firestore.Client
}

func NewAnnouncementRepository(client *firestore.Client) *AnnouncementRepository {
	return &AnnouncementRepository{
		client: client,
	}
}

func (r *AnnouncementRepository) CreateAnnouncement(ctx context.Context, a *models.Announcement) (string, error) {
	docRef, _, err := r.client.Collection(announcementsCollection).Add(ctx, a)
	if err != nil {
		return "", err
	}
	return docRef.ID, nil
}

func (r *AnnouncementRepository) GetAnnouncement(ctx context.Context, announcementID string) (*models.Announcement, error) {
	return getDoc(ctx, r.client.Collection(announcementsCollection).Doc(announcementID), setAnnouncementID)
}

// ListAnnouncementsForClasses queries the class IDs in chunks and merges the results
func (r *AnnouncementRepository) ListAnnouncementsForClasses(ctx context.Context, classIDs []string, limit int) ([]*models.Announcement, error) {
	var batches [][]*models.Announcement
	for _, chunk := range chunkStrings(classIDs, arrayContainsAnyLimit) {
		q := r.client.Collection(announcementsCollection).
			Where("classIds", "array-contains-any", chunk).
			OrderBy("createdAt", firestore.Desc)
		if limit > 0 {
			q = q.Limit(limit)
		}

		items, err := readAll(q.Documents(ctx), setAnnouncementID)
		if err != nil {
			return nil, err
		}
		batches = append(batches, items)
	}

	return mergeNewestFirst(batches, limit), nil
}

func chunkStrings(values []string, size int) [][]string {
	var chunks [][]string
	for len(values) > 0 {
		n := size
		if len(values) < n {
			n = len(values)
		}
		chunks = append(chunks, values[:n])
		values = values[n:]
	}
	return chunks
}

// mergeNewestFirst merges announcement lists, dropping duplicates, sorted by
// creation time descending and truncated to limit when limit > 0.
func mergeNewestFirst(batches [][]*models.Announcement, limit int) []*models.Announcement {
	seen := make(map[string]bool)
	merged := []*models.Announcement{}
	for _, batch := range batches {
		for _, a := range batch {
			if seen[a.ID] {
				continue
			}
			seen[a.ID] = true
			merged = append(merged, a)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}
