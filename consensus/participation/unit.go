// Package participation keeps the per-epoch consensus participation records
// that coinbase rewards are derived from.
package participation

import (
	"github.com/RoaringBitmap/roaring"
	mapset "github.com/deckarep/golang-set"
	"github.com/pkg/errors"

	"github.com/harmony-one/coinbase/shard"
)

var (
	// ErrInvalidUnit is returned for a unit whose bitmaps do not match its
	// membership, or whose membership is empty or repeats a key.
	ErrInvalidUnit = errors.New("invalid reward unit")
	// ErrIncompleteUnits is returned while some expected unit of an epoch is
	// still missing.
	ErrIncompleteUnits = errors.New("incomplete reward units")
	// ErrUnexpectedUnit is returned when a shard unit id is outside the
	// epoch's shard range.
	ErrUnexpectedUnit = errors.New("unexpected reward unit")
)

// Unit is the participation record of one committee for one epoch.
type Unit struct {
	ID      shard.UnitID
	Epoch   uint64
	Members shard.MemberList

	// Proposal marks members that co-signed the block proposal, Final those
	// that co-signed the final agreement. Bit i refers to Members[i].
	Proposal *roaring.Bitmap
	Final    *roaring.Bitmap
}

// NewUnit validates the bitmaps against members and builds a Unit.
func NewUnit(
	id shard.UnitID, proposal, final []bool, members shard.MemberList, epoch uint64,
) (*Unit, error) {
	if len(members) == 0 {
		return nil, errors.Wrapf(ErrInvalidUnit, "%s has no members", id)
	}
	if len(proposal) != len(members) || len(final) != len(members) {
		return nil, errors.Wrapf(ErrInvalidUnit,
			"%s: bitmap lengths proposal=%d final=%d, members=%d",
			id, len(proposal), len(final), len(members))
	}
	seen := mapset.NewThreadUnsafeSet()
	for i := range members {
		if !seen.Add(members[i].BLSPublicKey) {
			return nil, errors.Wrapf(ErrInvalidUnit,
				"%s: duplicate member %s", id, members[i].BLSPublicKey.Hex())
		}
	}
	return &Unit{
		ID:       id,
		Epoch:    epoch,
		Members:  members.DeepCopy(),
		Proposal: toBitmap(proposal),
		Final:    toBitmap(final),
	}, nil
}

func toBitmap(bits []bool) *roaring.Bitmap {
	bm := roaring.New()
	for i, set := range bits {
		if set {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// Size returns the member count.
func (u *Unit) Size() int {
	return len(u.Members)
}

// Qualified returns the members marked in both bitmaps.
func (u *Unit) Qualified() *roaring.Bitmap {
	return roaring.And(u.Proposal, u.Final)
}

// QualifiedCount ..
func (u *Unit) QualifiedCount() uint64 {
	return u.Qualified().GetCardinality()
}

// Signed reports the proposal and final flags of member i.
func (u *Unit) Signed(i int) (proposal, final bool) {
	return u.Proposal.Contains(uint32(i)), u.Final.Contains(uint32(i))
}
