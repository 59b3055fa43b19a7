package emotion

// valenceEntry 是情感词典中的一项，分值区间 [-5, 5]。
type valenceEntry struct {
	word  string
	score int
}

// englishValence 是 AFINN 风格的英文情感词典。顺序有意义：词干冲突时保留先出现的词。
var englishValence = []valenceEntry{
	// positive
	{"amazing", 4}, {"awesome", 4}, {"fantastic", 4}, {"wonderful", 4}, {"superb", 5},
	{"outstanding", 5}, {"excellent", 3}, {"brilliant", 4}, {"delighted", 3}, {"thrilled", 5},
	{"ecstatic", 4}, {"happy", 3}, {"joy", 3}, {"joyful", 3}, {"excited", 3},
	{"love", 3}, {"lovely", 3}, {"loved", 3}, {"glad", 3}, {"pleased", 3},
	{"great", 3}, {"good", 3}, {"nice", 3}, {"fun", 4}, {"enjoy", 2},
	{"cheerful", 2}, {"grateful", 3}, {"thankful", 2}, {"thanks", 2}, {"thank", 2},
	{"proud", 2}, {"hopeful", 2}, {"hope", 2}, {"calm", 2}, {"relaxed", 2},
	{"relieved", 2}, {"peaceful", 2}, {"confident", 2}, {"optimistic", 2},
	{"beautiful", 3}, {"best", 3}, {"better", 2}, {"blessed", 3}, {"celebrate", 3},
	{"comfort", 2}, {"cool", 1}, {"care", 2}, {"fine", 2}, {"friendly", 2},
	{"helpful", 2}, {"inspired", 2}, {"kind", 2}, {"laugh", 1}, {"like", 2},
	{"lucky", 3}, {"perfect", 3}, {"positive", 2}, {"safe", 1}, {"satisfied", 2},
	{"smile", 2}, {"success", 2}, {"successful", 3}, {"support", 2}, {"win", 4},
	{"wow", 4}, {"yes", 1}, {"ok", 0}, {"okay", 0}, {"alright", 1},

	// negative
	{"sad", -2}, {"unhappy", -2}, {"depressed", -2}, {"depression", -2}, {"miserable", -3},
	{"lonely", -2}, {"alone", -2}, {"hurt", -2}, {"hurts", -2}, {"cry", -1},
	{"crying", -2}, {"tears", -2}, {"upset", -2}, {"disappointed", -2}, {"disappointing", -2},
	{"heartbroken", -3}, {"grief", -2}, {"sorrow", -2}, {"hopeless", -2}, {"helpless", -2},
	{"worthless", -2}, {"empty", -1}, {"tired", -2}, {"exhausted", -2}, {"sick", -2},
	{"pain", -2}, {"painful", -2}, {"lost", -3}, {"broken", -1}, {"bad", -3},
	{"worse", -3}, {"worst", -3}, {"terrible", -3}, {"awful", -3}, {"horrible", -3},
	{"angry", -3}, {"anger", -3}, {"mad", -3}, {"furious", -3}, {"rage", -2},
	{"annoyed", -2}, {"annoying", -2}, {"frustrated", -2}, {"frustrating", -2}, {"irritated", -3},
	{"hate", -3}, {"hated", -3}, {"hateful", -3}, {"disgusted", -3}, {"disgusting", -3},
	{"unfair", -2}, {"stupid", -2}, {"idiot", -3}, {"damn", -4}, {"fuck", -4},
	{"anxious", -2}, {"anxiety", -2}, {"worried", -3}, {"worry", -3}, {"nervous", -2},
	{"stressed", -2}, {"stress", -1}, {"scared", -2}, {"afraid", -2}, {"fear", -2},
	{"frightened", -2}, {"terrified", -3}, {"panic", -3}, {"overwhelmed", -2}, {"tense", -2},
	{"uneasy", -2}, {"dread", -2}, {"problem", -2}, {"trouble", -2}, {"fail", -2},
	{"failed", -2}, {"failure", -2}, {"no", -1},
	{"meh", -1}, {"bored", -2}, {"boring", -3}, {"useless", -2}, {"wrong", -2},
	{"guilty", -3}, {"ashamed", -2}, {"embarrassed", -2}, {"regret", -2}, {"sorry", -1},
	{"kill", -3}, {"die", -3}, {"dead", -3}, {"death", -2}, {"suicide", -2},
}
