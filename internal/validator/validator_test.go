package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
)

type sample struct {
	Color     string `binding:"omitempty,hex_color"`
	Kind      string `binding:"omitempty,bucket_kind"`
	Role      string `binding:"omitempty,bucket_role"`
	Year      string `binding:"omitempty,period_year"`
	Month     string `binding:"omitempty,period_month"`
	Partition string `binding:"omitempty,amount_partition"`
	List      string `binding:"omitempty,extra_list"`
}

func init() {
	Register()
}

func TestRegisteredValidators(t *testing.T) {
	tests := []struct {
		name    string
		input   sample
		wantErr bool
	}{
		{name: "empty", input: sample{}},
		{name: "valid_all", input: sample{
			Color: "#4ECDC4", Kind: "investment", Role: "leisure",
			Year: "2025", Month: "12", Partition: "investment-usd", List: "living",
		}},
		{name: "short_hex", input: sample{Color: "#fff"}},
		{name: "bad_hex", input: sample{Color: "4ECDC4"}, wantErr: true},
		{name: "bad_kind", input: sample{Kind: "savings"}, wantErr: true},
		{name: "bad_role", input: sample{Role: "fun"}, wantErr: true},
		{name: "two_digit_year", input: sample{Year: "25"}, wantErr: true},
		{name: "month_13", input: sample{Month: "13"}, wantErr: true},
		{name: "unpadded_month", input: sample{Month: "1"}, wantErr: true},
		{name: "bad_partition", input: sample{Partition: "usd"}, wantErr: true},
		{name: "bad_list", input: sample{List: "other"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
