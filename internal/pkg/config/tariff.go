package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"route-engine/internal/entities"
)

// LoadTariff ставки оплаты: значения по умолчанию, затем YAML-файл (если
// задан), затем переменные TARIFF_*.
func LoadTariff(file string) (entities.Tariff, error) {
	def := entities.DefaultTariff()

	v := viper.New()
	v.SetDefault("pickup_fee_cents", int64(def.PickupFee))
	v.SetDefault("dropoff_fee_cents", int64(def.DropoffFee))
	v.SetDefault("mileage_rate_cents", int64(def.MileageRate))
	v.SetDefault("large_item_surcharge_cents", int64(def.LargeItemSurcharge))
	v.SetDefault("buyer_share_percent", def.BuyerSharePercent)
	v.SetDefault("rounding_unit_cents", int64(def.RoundingUnit))

	v.SetEnvPrefix("TARIFF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return entities.Tariff{}, fmt.Errorf("read tariff file %s: %w", file, err)
		}
	}

	t := entities.Tariff{
		PickupFee:          entities.Cents(v.GetInt64("pickup_fee_cents")),
		DropoffFee:         entities.Cents(v.GetInt64("dropoff_fee_cents")),
		MileageRate:        entities.Cents(v.GetInt64("mileage_rate_cents")),
		LargeItemSurcharge: entities.Cents(v.GetInt64("large_item_surcharge_cents")),
		BuyerSharePercent:  v.GetInt64("buyer_share_percent"),
		RoundingUnit:       entities.Cents(v.GetInt64("rounding_unit_cents")),
	}
	if err := validateTariff(t); err != nil {
		return entities.Tariff{}, err
	}
	return t, nil
}

func validateTariff(t entities.Tariff) error {
	if t.PickupFee < 0 || t.DropoffFee < 0 || t.MileageRate < 0 || t.LargeItemSurcharge < 0 {
		return errors.New("tariff fees must not be negative")
	}
	if t.BuyerSharePercent < 0 || t.BuyerSharePercent > 100 {
		return fmt.Errorf("buyer share must be in 0..100, got %d", t.BuyerSharePercent)
	}
	if t.RoundingUnit < 1 {
		return errors.New("rounding unit must be at least one cent")
	}
	return nil
}
