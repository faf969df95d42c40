package service

import (
	"strings"
	"testing"

	"github.com/GuiTheDevv/shipping-management/internal/ingestion/domain"
	shipmentdomain "github.com/GuiTheDevv/shipping-management/internal/shipment/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRow(t *testing.T) {
	cases := []struct {
		name   string
		record string
		bucket string
	}{
		{name: "valid", record: "1,2,Miami,GUY,5000,2000000,FEDEX,air,received,2024-01-01,,", bucket: domain.BucketValid},
		{name: "header row", record: "shipment_id,customer_id,origin,destination,weight,volume,carrier,mode,status,arrival_date", bucket: domain.BucketInvalidID},
		{name: "empty id", record: ",2,Miami,GUY,5000,2000000,FEDEX,air,received,2024-01-01", bucket: domain.BucketInvalidID},
		{name: "zero id", record: "0,2,Miami,GUY,5000,2000000,FEDEX,air,received,2024-01-01", bucket: domain.BucketInvalidID},
		{name: "fractional id", record: "1.5,2,Miami,GUY,5000,2000000,FEDEX,air,received,2024-01-01", bucket: domain.BucketInvalidID},
		{name: "whole float id", record: "12.0,2,Miami,GUY,5000,2000000,FEDEX,air,received,2024-01-01", bucket: domain.BucketValid},
		{name: "id only", record: "abc", bucket: domain.BucketInvalidID},
		{name: "short row", record: "7,2,Miami", bucket: domain.BucketMissingField},
		{name: "blank origin", record: "1,2,  ,GUY,5000,2000000,FEDEX,air,received,2024-01-01", bucket: domain.BucketMissingField},
		{name: "zero weight", record: "1,2,Miami,GUY,0,2000000,FEDEX,air,received,2024-01-01", bucket: domain.BucketMissingField},
		{name: "negative volume", record: "1,2,Miami,GUY,5000,-1,FEDEX,air,received,2024-01-01", bucket: domain.BucketMissingField},
		{name: "non numeric customer", record: "1,x,Miami,GUY,5000,2000000,FEDEX,air,received,2024-01-01", bucket: domain.BucketMissingField},
		{name: "missing arrival", record: "1,2,Miami,GUY,5000,2000000,FEDEX,air,received,", bucket: domain.BucketMissingField},
		{name: "unknown destination", record: "1,2,Miami,JAM,5000,2000000,FEDEX,air,received,2024-01-01", bucket: domain.BucketInvalidEnum},
		{name: "lowercase carrier", record: "1,2,Miami,GUY,5000,2000000,fedex,air,received,2024-01-01", bucket: domain.BucketInvalidEnum},
		{name: "unknown mode", record: "1,2,Miami,GUY,5000,2000000,FEDEX,rail,received,2024-01-01", bucket: domain.BucketInvalidEnum},
		{name: "unknown status", record: "1,2,Miami,GUY,5000,2000000,FEDEX,air,lost,2024-01-01", bucket: domain.BucketInvalidEnum},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, bucket := classifyRow(strings.Split(tc.record, ","))
			assert.Equal(t, tc.bucket, bucket)
		})
	}
}

func TestClassifyRowNormalizes(t *testing.T) {
	shipment, bucket := classifyRow([]string{" 9 ", "4", " Miami ", "BIM", "1500.5", "300", "DHL", "sea", "delivered", "2024-03-01", " ", "2024-03-20"})
	require.Equal(t, domain.BucketValid, bucket)

	assert.Equal(t, int64(9), shipment.ShipmentID)
	require.NotNil(t, shipment.Origin)
	assert.Equal(t, "Miami", *shipment.Origin)
	assert.Equal(t, shipmentdomain.DestinationBIM, shipment.Destination)
	assert.Equal(t, 1500.5, shipment.Weight)
	assert.Nil(t, shipment.DepartureDate)
	require.NotNil(t, shipment.DeliveredDate)
	assert.Equal(t, "2024-03-20", *shipment.DeliveredDate)
}
