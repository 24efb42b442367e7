// Package store keeps the local ledger of finalized sessions and the
// profile totals they earn
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"slices"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/focusring/internal/models"
	"github.com/ayoisaiah/focusring/internal/timeutil"
	"github.com/ayoisaiah/focusring/timer"
)

const (
	sessionBucket = "sessions"
	profileBucket = "profile"
	idBucket      = "ids"
)

var profileKey = []byte("totals")

// DB is the session ledger.
type DB interface {
	timer.Submitter
	// GetSessions returns the sessions that overlap the given period,
	// optionally restricted to the given activity tags
	GetSessions(startTime, endTime time.Time, tags []string) ([]models.Session, error)
	// DeleteSessions removes sessions from the ledger. Profile totals are
	// not adjusted.
	DeleteSessions(sessions []models.Session) error
	// Profile returns the accumulated totals
	Profile() (models.Profile, error)
	// Close ends the database connection
	Close() error
}

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string, timeout time.Duration) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: timeout},
	)
	if err != nil {
		// the file lock is held by another process
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errFocusRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient opens the ledger at dbPath, creating the buckets it needs.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath, 1*time.Second)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{sessionBucket, profileBucket, idBucket} {
			_, err := tx.CreateBucketIfNotExists([]byte(name))
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Client{db}, nil
}

// Locked reports whether another process holds the database at dbPath.
func Locked(dbPath string) bool {
	db, err := openDB(dbPath, 100*time.Millisecond)
	if err != nil {
		return errors.Is(err, errFocusRunning)
	}

	_ = db.Close()

	return false
}

// SubmitSession records a finalized session and credits its reward to the
// profile. It is the local upload collaborator.
func (c *Client) SubmitSession(
	ctx context.Context,
	sess timer.FinalizedSession,
) (timer.Reward, error) {
	if err := ctx.Err(); err != nil {
		return timer.Reward{}, err
	}

	reward := Award(sess.DurationSeconds)

	rec := models.Session{
		ID:              sess.ID,
		StartTime:       sess.StartTime,
		EndTime:         sess.EndTime,
		ActivityTag:     sess.ActivityTag,
		Mode:            sess.Mode,
		Timezone:        sess.Timezone,
		DurationSeconds: sess.DurationSeconds,
		Coins:           reward.Coins,
		XP:              reward.XP,
	}

	value, err := json.Marshal(rec)
	if err != nil {
		return timer.Reward{}, err
	}

	key := timeutil.ToKey(rec.StartTime)

	err = c.Update(func(tx *bolt.Tx) error {
		ids := tx.Bucket([]byte(idBucket))
		if ids.Get([]byte(rec.ID)) != nil {
			return errDuplicateSession.Fmt(rec.ID)
		}

		err := ids.Put([]byte(rec.ID), key)
		if err != nil {
			return err
		}

		err = tx.Bucket([]byte(sessionBucket)).Put(key, value)
		if err != nil {
			return err
		}

		return updateProfile(tx, &rec)
	})
	if err != nil {
		return timer.Reward{}, err
	}

	return reward, nil
}

func updateProfile(tx *bolt.Tx, sess *models.Session) error {
	b := tx.Bucket([]byte(profileBucket))

	var p models.Profile

	if v := b.Get(profileKey); v != nil {
		err := json.Unmarshal(v, &p)
		if err != nil {
			return err
		}
	}

	p.Sessions++
	p.FocusSeconds += sess.DurationSeconds
	p.Coins += sess.Coins
	p.XP += sess.XP

	if sess.EndTime.After(p.LastSession) {
		p.LastSession = sess.EndTime
	}

	v, err := json.Marshal(p)
	if err != nil {
		return err
	}

	return b.Put(profileKey, v)
}

// Profile returns the accumulated totals.
func (c *Client) Profile() (models.Profile, error) {
	var p models.Profile

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(profileBucket)).Get(profileKey)
		if v == nil {
			return nil
		}

		return json.Unmarshal(v, &p)
	})

	return p, err
}

// GetSessions returns the sessions that overlap the period between
// startTime and endTime in chronological order.
func (c *Client) GetSessions(
	startTime, endTime time.Time,
	tags []string,
) ([]models.Session, error) {
	var result []models.Session

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(sessionBucket)).Cursor()
		min := timeutil.ToKey(startTime)
		max := timeutil.ToKey(endTime)

		sk, sv := cur.Seek(min)

		// the session before the lower bound may still have ended inside
		// the period
		var pk, pv []byte
		if sk == nil {
			pk, pv = cur.Last()
		} else {
			pk, pv = cur.Prev()
		}

		if pk != nil {
			var sess models.Session

			err := json.Unmarshal(pv, &sess)
			if err != nil {
				return err
			}

			if sess.EndTime.After(startTime) {
				sk, sv = pk, pv
			} else {
				sk, sv = cur.Next()
			}
		} else {
			sk, sv = cur.Seek(min)
		}

		for k, v := sk, sv; k != nil && bytes.Compare(k, max) <= 0; k, v = cur.Next() {
			var sess models.Session

			err := json.Unmarshal(v, &sess)
			if err != nil {
				return err
			}

			if len(tags) != 0 && !slices.Contains(tags, sess.ActivityTag) {
				continue
			}

			result = append(result, sess)
		}

		return nil
	})

	return result, err
}

// DeleteSessions removes the given sessions from the ledger.
func (c *Client) DeleteSessions(sessions []models.Session) error {
	return c.Update(func(tx *bolt.Tx) error {
		for i := range sessions {
			sess := sessions[i]

			err := tx.Bucket([]byte(sessionBucket)).
				Delete(timeutil.ToKey(sess.StartTime))
			if err != nil {
				return err
			}

			err = tx.Bucket([]byte(idBucket)).Delete([]byte(sess.ID))
			if err != nil {
				return err
			}
		}

		return nil
	})
}
