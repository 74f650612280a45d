package credit_test

import (
	"errors"
	"testing"

	"github.com/nexusbt/nexus/foundation/nexus/credit"
	"github.com/shopspring/decimal"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestUploadCredit(t *testing.T) {
	type table struct {
		name        string
		sizeGB      string
		creditPerGB uint64
		credit      uint64
		err         error
	}

	tt := []table{
		{name: "whole", sizeGB: "2", creditPerGB: 1000, credit: 2000},
		{name: "fractional", sizeGB: "1.5", creditPerGB: 1000, credit: 1500},
		{name: "floors", sizeGB: "0.0015", creditPerGB: 1000, credit: 1},
		{name: "zero", sizeGB: "0", creditPerGB: 1000, err: credit.ErrInvalidSize},
		{name: "negative", sizeGB: "-1", creditPerGB: 1000, err: credit.ErrInvalidSize},
	}

	t.Log("Given the need to calculate upload credits.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen sharing a %s GB resource.", testID, tst.sizeGB)
			{
				f := func(t *testing.T) {
					got, err := credit.UploadCredit(decimal.RequireFromString(tst.sizeGB), tst.creditPerGB)
					if !errors.Is(err, tst.err) {
						t.Fatalf("\t%s\tTest %d:\tShould get the expected error: got %v, exp %v", failed, testID, err, tst.err)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected error.", success, testID)

					if got != tst.credit {
						t.Fatalf("\t%s\tTest %d:\tShould get the expected credit: got %d, exp %d", failed, testID, got, tst.credit)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected credit.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestDownloadCost(t *testing.T) {
	type table struct {
		name        string
		sizeGB      string
		creditPerGB uint64
		tipRate     string
		cost        uint64
		fee         uint64
		err         error
	}

	tt := []table{
		{name: "basic", sizeGB: "2", creditPerGB: 1000, tipRate: "0.001", cost: 2000, fee: 2},
		{name: "fee floors to one", sizeGB: "0.5", creditPerGB: 1000, tipRate: "0.001", cost: 500, fee: 1},
		{name: "tiny file still pays one", sizeGB: "0.01", creditPerGB: 1000, tipRate: "0.001", cost: 10, fee: 1},
		{name: "larger tip rate", sizeGB: "10", creditPerGB: 1000, tipRate: "0.01", cost: 10000, fee: 100},
		{name: "invalid size", sizeGB: "0", creditPerGB: 1000, tipRate: "0.001", err: credit.ErrInvalidSize},
	}

	t.Log("Given the need to calculate download costs and fees.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen downloading a %s GB resource.", testID, tst.sizeGB)
			{
				f := func(t *testing.T) {
					cost, fee, err := credit.DownloadCost(decimal.RequireFromString(tst.sizeGB), tst.creditPerGB, decimal.RequireFromString(tst.tipRate))
					if !errors.Is(err, tst.err) {
						t.Fatalf("\t%s\tTest %d:\tShould get the expected error: got %v, exp %v", failed, testID, err, tst.err)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected error.", success, testID)

					if cost != tst.cost {
						t.Fatalf("\t%s\tTest %d:\tShould get the expected cost: got %d, exp %d", failed, testID, cost, tst.cost)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected cost.", success, testID)

					if fee != tst.fee {
						t.Fatalf("\t%s\tTest %d:\tShould get the expected fee: got %d, exp %d", failed, testID, fee, tst.fee)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected fee.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}
