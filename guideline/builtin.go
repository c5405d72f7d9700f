package guideline

// builtinCatalog is served when no references directory is configured.
func builtinCatalog() Catalog {
	return Catalog{
		Layouts: []Option{
			{ID: "bento-grid", Title: "bento-grid", Summary: "Modular grid layout with varied cell sizes, like a bento box."},
			{ID: "binary-comparison", Title: "binary-comparison", Summary: "Side-by-side comparison of two items, states, or concepts."},
			{ID: "bridge", Title: "bridge", Summary: "Gap-crossing structure connecting problem to solution or current to future state."},
			{ID: "circular-flow", Title: "circular-flow", Summary: "Cyclic process showing continuous or recurring steps."},
			{ID: "comic-strip", Title: "comic-strip", Summary: "Sequential narrative panels telling a story or explaining a concept."},
			{ID: "comparison-matrix", Title: "comparison-matrix", Summary: "Grid-based multi-factor comparison across multiple items."},
			{ID: "dashboard", Title: "dashboard", Summary: "Multi-metric display with charts, numbers, and KPI indicators."},
			{ID: "funnel", Title: "funnel", Summary: "Narrowing stages showing conversion, filtering, or refinement process."},
			{ID: "hierarchical-layers", Title: "hierarchical-layers", Summary: "Nested layers showing levels of importance, influence, or proximity."},
			{ID: "hub-spoke", Title: "hub-spoke", Summary: "Central concept with radiating connections to related items."},
			{ID: "iceberg", Title: "iceberg", Summary: "Surface vs hidden depths, visible vs underlying factors."},
			{ID: "isometric-map", Title: "isometric-map", Summary: "3D-style spatial layout showing locations, relationships, or journey through space."},
			{ID: "jigsaw", Title: "jigsaw", Summary: "Interlocking puzzle pieces showing how parts fit together."},
			{ID: "linear-progression", Title: "linear-progression", Summary: "Sequential progression showing steps, timeline, or chronological events."},
			{ID: "periodic-table", Title: "periodic-table", Summary: "Grid of categorized elements with consistent cell formatting."},
			{ID: "story-mountain", Title: "story-mountain", Summary: "Plot structure visualization showing rising action, climax, and resolution."},
			{ID: "structural-breakdown", Title: "structural-breakdown", Summary: "Internal structure visualization with labeled parts or layers."},
			{ID: "tree-branching", Title: "tree-branching", Summary: "Hierarchical structure branching from root to leaves, showing categories and subcategories."},
			{ID: "venn-diagram", Title: "venn-diagram", Summary: "Overlapping circles showing relationships, commonalities, and differences."},
			{ID: "winding-roadmap", Title: "winding-roadmap", Summary: "Curved path showing journey with milestones and checkpoints."},
		},
		Styles: []Option{
			{ID: "aged-academia", Title: "aged-academia", Summary: "Historical scientific illustration with aged paper aesthetic."},
			{ID: "bold-graphic", Title: "bold-graphic", Summary: "High-contrast comic style with bold outlines and dramatic visuals."},
			{ID: "chalkboard", Title: "chalkboard", Summary: "Black chalkboard background with colorful chalk drawing style"},
			{ID: "claymation", Title: "claymation", Summary: "3D clay figure aesthetic with stop-motion charm"},
			{ID: "corporate-memphis", Title: "corporate-memphis", Summary: "Flat vector people with vibrant geometric fills"},
			{ID: "craft-handmade", Title: "craft-handmade (DEFAULT)", Summary: "Hand-drawn and paper craft aesthetic with warm, organic feel."},
			{ID: "cyberpunk-neon", Title: "cyberpunk-neon", Summary: "Neon glow on dark backgrounds, futuristic aesthetic"},
			{ID: "ikea-manual", Title: "ikea-manual", Summary: "Minimal line art assembly instruction style"},
			{ID: "kawaii", Title: "kawaii", Summary: "Japanese cute style with big eyes and pastel colors"},
			{ID: "knolling", Title: "knolling", Summary: "Organized flat-lay with top-down arrangement"},
			{ID: "lego-brick", Title: "lego-brick", Summary: "Toy brick construction with playful aesthetic"},
			{ID: "origami", Title: "origami", Summary: "Folded paper forms with geometric precision"},
			{ID: "pixel-art", Title: "pixel-art", Summary: "Retro 8-bit gaming aesthetic"},
			{ID: "storybook-watercolor", Title: "storybook-watercolor", Summary: "Soft hand-painted illustration with whimsical charm"},
			{ID: "subway-map", Title: "subway-map", Summary: "Transit diagram style with colored lines and stations"},
			{ID: "technical-schematic", Title: "technical-schematic", Summary: "Technical diagrams with engineering precision and clean geometry."},
			{ID: "ui-wireframe", Title: "ui-wireframe", Summary: "Grayscale interface mockup style"},
		},
	}
}
