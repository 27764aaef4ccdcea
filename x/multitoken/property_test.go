package multitoken_test

import (
	"math/rand"
	"testing"

	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/ledgertest"
	"github.com/iov-one/tokenledger/store"
	"github.com/iov-one/tokenledger/x/multitoken"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConservation(t *testing.T) {
	Convey("Given a ledger driven by random batches", t, func() {
		db := store.MemStore()
		l := newLedger(nil)
		accounts := []tokenledger.Address{
			ledgertest.NewAddress(),
			ledgertest.NewAddress(),
			ledgertest.NewAddress(),
		}
		const tokens = 4
		rnd := rand.New(rand.NewSource(7))
		pick := func() tokenledger.Address { return accounts[rnd.Intn(len(accounts))] }
		batch := func() ([]uint64, []uint64) {
			n := 1 + rnd.Intn(3)
			ids := make([]uint64, n)
			amounts := make([]uint64, n)
			for i := range ids {
				ids[i] = uint64(rnd.Intn(tokens))
				amounts[i] = uint64(rnd.Intn(30))
			}
			return ids, amounts
		}

		supply := make(map[uint64]uint64)
		for i := 0; i < 400; i++ {
			caller := pick()
			ctx := ledgertest.Ctx(caller)
			ids, amounts := batch()
			switch rnd.Intn(4) {
			case 0:
				if err := l.MintBatch(ctx, db, pick(), ids, amounts, nil); err == nil {
					for k, id := range ids {
						supply[id] += amounts[k]
					}
				}
			case 1:
				if err := l.BurnBatch(ctx, db, pick(), ids, amounts); err == nil {
					for k, id := range ids {
						supply[id] -= amounts[k]
					}
				} else {
					So(multitoken.ErrFromBalanceLessThanAmount.Is(err), ShouldBeTrue)
				}
			case 2:
				_ = l.SetApprovalForAll(ctx, db, pick(), rnd.Intn(2) == 0)
			default:
				_ = l.SafeBatchTransferFrom(ctx, db, pick(), pick(), ids, amounts, nil)
			}
		}

		Convey("Per identifier, balances sum up to minted minus burned", func() {
			for id := uint64(0); id < tokens; id++ {
				var total uint64
				for _, a := range accounts {
					bal, err := l.BalanceOf(db, a, id)
					So(err, ShouldBeNil)
					total += bal
				}
				So(total, ShouldEqual, supply[id])
			}
		})

		Convey("A burn above the balance changes nothing", func() {
			a := accounts[0]
			ids := []uint64{0, 1}
			before, err := l.BalanceOfBatch(db, []tokenledger.Address{a, a}, ids)
			So(err, ShouldBeNil)

			err = l.BurnBatch(ledgertest.Ctx(a), db, a, ids, []uint64{before[0], before[1] + 1})
			So(multitoken.ErrFromBalanceLessThanAmount.Is(err), ShouldBeTrue)

			after, err := l.BalanceOfBatch(db, []tokenledger.Address{a, a}, ids)
			So(err, ShouldBeNil)
			So(after, ShouldResemble, before)
		})
	})
}
