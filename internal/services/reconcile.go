package services

import (
	"log"
	"sync"
	"time"

	"gareddit/internal/models"

	"gorm.io/gorm"
)

// ReconcileService repairs score drift in the background. The vote transaction
// keeps score and ledger consistent on its own; this worker re-derives
// score = SUM(vote.value) from the ledger as a safety net, e.g. after manual
// data surgery or a restored backup.
type ReconcileService struct {
	conn    *gorm.DB
	queue   chan uint // post IDs awaiting recomputation
	pending map[uint]bool
	mu      sync.Mutex
}

func NewReconcileService(conn *gorm.DB) *ReconcileService {
	s := &ReconcileService{
		conn:    conn,
		queue:   make(chan uint, 1000),
		pending: make(map[uint]bool),
	}
	go s.worker()
	return s
}

// Schedule enqueues a post for recomputation. Duplicate requests for a post
// already in the queue are dropped.
func (s *ReconcileService) Schedule(postID uint) {
	s.mu.Lock()
	if s.pending[postID] {
		s.mu.Unlock()
		return
	}
	s.pending[postID] = true
	s.mu.Unlock()

	select {
	case s.queue <- postID:
	default:
		s.mu.Lock()
		delete(s.pending, postID)
		s.mu.Unlock()
		log.Printf("reconcile queue full, skipping post %d", postID)
	}
}

func (s *ReconcileService) worker() {
	batch := make([]uint, 0, 50)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case postID := <-s.queue:
			batch = append(batch, postID)
			if len(batch) >= 50 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *ReconcileService) processBatch(postIDs []uint) {
	for _, postID := range postIDs {
		if err := s.Recompute(postID); err != nil {
			log.Printf("failed to reconcile score for post %d: %v", postID, err)
		}
		s.mu.Lock()
		delete(s.pending, postID)
		s.mu.Unlock()
	}
}

// Recompute overwrites a post's score with the ledger sum. A single UPDATE
// with a subquery, so it serializes on the post row against in-flight vote
// transactions instead of writing back a stale sum.
func (s *ReconcileService) Recompute(postID uint) error {
	return s.conn.Model(&models.Post{}).
		Where("id = ?", postID).
		UpdateColumn("score", gorm.Expr(
			"(SELECT COALESCE(SUM(value), 0) FROM votes WHERE post_id = ?)", postID,
		)).Error
}
