package charts

const (
	// ChartHeightRatio determines chart height as width/ChartHeightRatio.
	ChartHeightRatio = 8

	// MinChartHeight is the floor for timeseries chart height.
	MinChartHeight = 8

	// HoverMarker marks the hovered point on line charts.
	HoverMarker = '●'
)
