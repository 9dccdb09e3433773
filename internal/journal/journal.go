package journal

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ipmifan/ipmifan/internal/ui"
)

const bucketEvents = "events"

// EventType categorizes journal entries.
type EventType string

const (
	EventLevelChange       EventType = "levelChange"
	EventStandbyTransition EventType = "standbyTransition"
	EventCommandFailure    EventType = "commandFailure"
)

// Event is a single diagnostic record of a control decision or failure.
type Event struct {
	Time        time.Time `json:"time"`
	Zone        string    `json:"zone"`
	Type        EventType `json:"type"`
	Message     string    `json:"message"`
	Temperature float64   `json:"temperature,omitempty"`
	Level       int       `json:"level,omitempty"`
}

// Journal records control events for later inspection. It is purely
// diagnostic, the daemon never reads it back to make decisions.
type Journal interface {
	RecordLevelChange(zone string, temperature float64, level int)
	RecordStandbyTransition(zone string, message string)
	RecordCommandFailure(zone string, err error)
	// Events returns the most recent entries, newest first, up to limit.
	Events(limit int) ([]Event, error)
}

func NewJournal(dbPath string) Journal {
	if dbPath == "" {
		return nopJournal{}
	}
	return &boltJournal{dbPath: dbPath}
}

type boltJournal struct {
	dbPath string
}

func (j *boltJournal) openPersistence() (*bolt.DB, error) {
	db, err := bolt.Open(j.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func (j *boltJournal) RecordLevelChange(zone string, temperature float64, level int) {
	j.record(Event{
		Time:        time.Now(),
		Zone:        zone,
		Type:        EventLevelChange,
		Message:     fmt.Sprintf("level set to %d at %.2f°C", level, temperature),
		Temperature: temperature,
		Level:       level,
	})
}

func (j *boltJournal) RecordStandbyTransition(zone string, message string) {
	j.record(Event{
		Time:    time.Now(),
		Zone:    zone,
		Type:    EventStandbyTransition,
		Message: message,
	})
}

func (j *boltJournal) RecordCommandFailure(zone string, err error) {
	j.record(Event{
		Time:    time.Now(),
		Zone:    zone,
		Type:    EventCommandFailure,
		Message: err.Error(),
	})
}

// record appends the event, failures are logged but never propagated into
// the control path.
func (j *boltJournal) record(event Event) {
	db, err := j.openPersistence()
	if err != nil {
		ui.Warning("Could not open journal %s: %v", j.dbPath, err)
		return
	}
	defer db.Close()

	err = db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(bucketEvents))
		if err != nil {
			return err
		}
		data, err := json.Marshal(event)
		if err != nil {
			return err
		}
		sequence, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		return bucket.Put([]byte(fmt.Sprintf("%020d", sequence)), data)
	})
	if err != nil {
		ui.Warning("Could not write journal event: %v", err)
	}
}

func (j *boltJournal) Events(limit int) ([]Event, error) {
	db, err := j.openPersistence()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var events []Event
	err = db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketEvents))
		if bucket == nil {
			return nil
		}
		cursor := bucket.Cursor()
		for key, value := cursor.Last(); key != nil && len(events) < limit; key, value = cursor.Prev() {
			var event Event
			if err := json.Unmarshal(value, &event); err != nil {
				return err
			}
			events = append(events, event)
		}
		return nil
	})
	return events, err
}

// nopJournal is used when no journal path is configured.
type nopJournal struct{}

func (nopJournal) RecordLevelChange(string, float64, int) {}
func (nopJournal) RecordStandbyTransition(string, string) {}
func (nopJournal) RecordCommandFailure(string, error)     {}
func (nopJournal) Events(int) ([]Event, error)            { return nil, nil }
