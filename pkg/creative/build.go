package creative

import "strings"

// Build turns a brief into the creative set persisted for a qualifying product:
// ad copy per framework, lifestyle image prompts, a carousel and every video script.
// IDs, product linkage and timestamps are left to the caller.
func Build(b Brief) []AdCreative {
	copyPkg := GenerateAll(b)
	comp := CompositionSpec(b.Price)
	prompts := LifestylePrompts(b)

	var out []AdCreative
	for _, v := range copyPkg.Variations {
		out = append(out, AdCreative{
			Type:         TypeAdCopy,
			Platform:     PlatformFacebook,
			Framework:    v.Framework,
			Headline:     v.Headline,
			PrimaryText:  v.PrimaryText,
			Description:  v.Description,
			CallToAction: v.CallToAction,
		})
	}

	for _, prompt := range prompts {
		out = append(out, AdCreative{
			Type:         TypeStaticImage,
			Platform:     PlatformInstagram,
			Headline:     Truncate(comp.PriceBadge, MaxHeadline),
			Description:  Truncate(comp.UrgencyText, MaxDescription),
			CallToAction: comp.CallToAction,
			ImagePrompt:  prompt,
		})
	}

	out = append(out, AdCreative{
		Type:         TypeCarousel,
		Platform:     PlatformInstagram,
		Headline:     copyPkg.Headlines[0],
		PrimaryText:  copyPkg.PrimaryTexts[0],
		Description:  copyPkg.Descriptions[0],
		CallToAction: comp.CallToAction,
		ImagePrompt:  strings.Join(prompts, "\n"),
	})

	for _, script := range GenerateAllScripts(b) {
		out = append(out, AdCreative{
			Type:        TypeVideoScript,
			Platform:    Platform(strings.ToUpper(script.Platform)),
			VideoScript: &script,
		})
	}

	return out
}
