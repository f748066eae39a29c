// Package charts renders the three catalog charts with gonum/plot: titles
// added per year, the most frequent countries and the correlation heatmap
// of numeric columns. All visual settings travel in a Style value owned by
// the Renderer.
package charts
