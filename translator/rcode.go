package translator

// ============================================================================
// R CODE TEMPLATES — ggplot2 reconstruction snippets per chart type
// ============================================================================
// Image analysis answers include runnable R code so users can rebuild
// the recognized chart from their own CSV. Templates are keyed by the
// engine registry's chart ids.
// ============================================================================

var rCodeTemplates = map[string]string{
	"bar": `# Bar Chart - Generated R Code
library(ggplot2)

data <- read.csv("your_data.csv")

ggplot(data, aes(x=category, y=value)) +
  geom_bar(stat="identity", fill="steelblue") +
  theme_minimal() +
  labs(title="Bar Chart", x="Category", y="Value")

ggsave("bar_chart.png", width=10, height=6, dpi=300)
`,

	"line": `# Line Chart - Generated R Code
library(ggplot2)

data <- read.csv("your_data.csv")

ggplot(data, aes(x=time, y=value)) +
  geom_line(color="darkblue", size=1.2) +
  geom_point(color="darkblue", size=2) +
  theme_minimal() +
  labs(title="Line Chart", x="Time", y="Value")

ggsave("line_chart.png", width=10, height=6, dpi=300)
`,

	"scatter": `# Scatter Plot - Generated R Code
library(ggplot2)

data <- read.csv("your_data.csv")

ggplot(data, aes(x=x_var, y=y_var)) +
  geom_point(color="coral", size=3, alpha=0.6) +
  geom_smooth(method="lm", se=TRUE, color="darkred") +
  theme_minimal() +
  labs(title="Scatter Plot", x="X Variable", y="Y Variable")

ggsave("scatter_plot.png", width=10, height=6, dpi=300)
`,

	"histogram": `# Histogram - Generated R Code
library(ggplot2)

data <- read.csv("your_data.csv")

ggplot(data, aes(x=value)) +
  geom_histogram(bins=30, fill="steelblue", color="white", alpha=0.7) +
  theme_minimal() +
  labs(title="Histogram", x="Value", y="Frequency")

ggsave("histogram.png", width=10, height=6, dpi=300)
`,

	"boxplot": `# Box Plot - Generated R Code
library(ggplot2)

data <- read.csv("your_data.csv")

ggplot(data, aes(x=group, y=value)) +
  geom_boxplot(fill="steelblue", alpha=0.7) +
  theme_minimal() +
  labs(title="Box Plot", x="Group", y="Value")

ggsave("box_plot.png", width=10, height=6, dpi=300)
`,

	"heatmap": `# Heatmap - Generated R Code
library(ggplot2)

data <- read.csv("your_data.csv")

ggplot(data, aes(x=x_var, y=y_var, fill=value)) +
  geom_tile() +
  scale_fill_viridis_c() +
  theme_minimal() +
  labs(title="Heatmap", x="X", y="Y")

ggsave("heatmap.png", width=10, height=6, dpi=300)
`,

	"pie": `# Pie Chart - Generated R Code
library(ggplot2)

data <- read.csv("your_data.csv")

ggplot(data, aes(x="", y=value, fill=category)) +
  geom_bar(stat="identity", width=1) +
  coord_polar("y", start=0) +
  theme_void() +
  labs(title="Pie Chart") +
  scale_fill_brewer(palette="Set3")

ggsave("pie_chart.png", width=8, height=8, dpi=300)
`,

	"violin": `# Violin Plot - Generated R Code
library(ggplot2)

data <- read.csv("your_data.csv")

ggplot(data, aes(x=group, y=value)) +
  geom_violin(fill="steelblue", alpha=0.7) +
  geom_boxplot(width=0.1, fill="white") +
  theme_minimal() +
  labs(title="Violin Plot", x="Group", y="Value")

ggsave("violin_plot.png", width=10, height=6, dpi=300)
`,

	"area": `# Area Chart - Generated R Code
library(ggplot2)

data <- read.csv("your_data.csv")

ggplot(data, aes(x=time, y=value)) +
  geom_area(fill="steelblue", alpha=0.5) +
  geom_line(color="darkblue", size=1) +
  theme_minimal() +
  labs(title="Area Chart", x="Time", y="Value")

ggsave("area_chart.png", width=10, height=6, dpi=300)
`,

	"stacked_bar": `# Stacked Bar Chart - Generated R Code
library(ggplot2)

data <- read.csv("your_data.csv")

ggplot(data, aes(x=category, y=value, fill=group)) +
  geom_bar(stat="identity") +
  theme_minimal() +
  labs(title="Stacked Bar Chart", x="Category", y="Value") +
  scale_fill_brewer(palette="Set2")

ggsave("stacked_bar_chart.png", width=10, height=6, dpi=300)
`,
}

// RCode returns the ggplot2 reconstruction snippet for a chart type.
func RCode(chartType string) string {
	if code, ok := rCodeTemplates[chartType]; ok {
		return code
	}
	return "# Chart type not recognized\n# Please specify chart type manually"
}
