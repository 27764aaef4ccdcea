/*
Package events implements the observable event log of a ledger.

Events are written into the same store as the state change that produced
them. A ledger call runs inside a savepoint, so when the call fails its
events are discarded together with its state and observers never see an
event for a change that did not happen.
*/
package events

import (
	"encoding/hex"
	"encoding/json"

	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/errors"
	"github.com/iov-one/tokenledger/orm"
)

const bucketName = "evt"

// Event is implemented by every typed event a ledger emits.
type Event interface {
	// EventName is the stable name the event is recorded under.
	EventName() string
}

// Record is an event as stored in the log.
type Record struct {
	Seq     uint64          `json:"seq"`
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// Decode unmarshals the payload into dst. The record must hold an event of
// the same name.
func (r Record) Decode(dst Event) error {
	if r.Name != dst.EventName() {
		return errors.ErrInvalidType.Newf("record holds %q, not %q", r.Name, dst.EventName())
	}
	if err := json.Unmarshal(r.Payload, dst); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "decode %s: %s", r.Name, err)
	}
	return nil
}

// Log is the event log of one ledger instance.
type Log struct {
	owner  []byte
	bucket orm.Bucket
	seq    orm.Sequence
}

// NewLog returns the log of the ledger deployed at owner.
func NewLog(owner tokenledger.Address) Log {
	return Log{
		owner:  owner.Clone(),
		bucket: orm.NewBucket(bucketName),
		seq:    orm.NewSequence(bucketName, hex.EncodeToString(owner)),
	}
}

// Emit appends an event and returns its sequence number. Sequence numbers
// start at 1.
func (l Log) Emit(db tokenledger.KVStore, e Event) (uint64, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "encode %s: %s", e.EventName(), err)
	}
	seq, err := l.seq.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "event sequence")
	}
	rec := Record{Seq: seq, Name: e.EventName(), Payload: payload}
	raw, err := json.Marshal(rec)
	if err != nil {
		return 0, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if err := l.bucket.Set(db, raw, l.owner, orm.EncodeUint64(seq)); err != nil {
		return 0, err
	}
	return seq, nil
}

// List returns all records with a sequence greater than after, in order.
func (l Log) List(db tokenledger.ReadOnlyKVStore, after uint64) ([]Record, error) {
	models, err := l.bucket.Prefix(db, l.owner)
	if err != nil {
		return nil, err
	}
	var res []Record
	for _, m := range models {
		var rec Record
		if err := json.Unmarshal(m.Value, &rec); err != nil {
			return nil, errors.Wrapf(orm.ErrInvalidEncoding, "event record: %s", err)
		}
		if rec.Seq <= after {
			continue
		}
		res = append(res, rec)
	}
	return res, nil
}

// Latest returns the sequence number of the last emitted event, zero when
// the log is empty.
func (l Log) Latest(db tokenledger.ReadOnlyKVStore) (uint64, error) {
	return l.seq.Latest(db)
}
