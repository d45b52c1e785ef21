package itembank

// readingPassages is the built-in English reading content. Question order
// matters: earlier questions are literal recall, later ones inference.
var readingPassages = []Passage{
	{
		ID: "e-lit-lost-kite", GradeMin: 2, GradeMax: 3, Topic: TopicLiterary,
		Title: "The Lost Kite",
		Text: "Sam had a red kite with a long yellow tail. One windy morning he ran to the park to fly it. " +
			"The wind pulled the kite high above the trees. Then the string slipped from his hands! " +
			"Sam felt his eyes sting with tears. His sister Lily pointed at the old oak tree. " +
			"The kite was caught in the branches. Together they found a long stick and gently pulled it down. " +
			"\"Next time I will hold on tight,\" Sam said with a grin.",
		Questions: []PassageQuestion{
			{Stem: "What color was Sam's kite?", Choices: []string{"Red", "Blue", "Yellow", "Green"}, Correct: "Red", Skill: "detail"},
			{Stem: "Where did Sam go to fly the kite?", Choices: []string{"The park", "The beach", "His school", "The farm"}, Correct: "The park", Skill: "detail"},
			{Stem: "Where did the kite get stuck?", Choices: []string{"In an oak tree", "On a roof", "In a pond", "On a fence"}, Correct: "In an oak tree", Skill: "detail"},
			{Stem: "How did Sam feel when the string slipped?", Choices: []string{"Upset", "Proud", "Sleepy", "Angry at Lily"}, Correct: "Upset", Skill: "inference"},
			{Stem: "What lesson does Sam learn?", Choices: []string{"Hold on tight to things you care about", "Kites are boring", "Never go to the park", "Trees are dangerous"}, Correct: "Hold on tight to things you care about", Skill: "theme"},
		},
	},
	{
		ID: "e-inf-honey-bees", GradeMin: 2, GradeMax: 4, Topic: TopicInformational,
		Title: "How Bees Make Honey",
		Text: "Honey bees visit flowers to collect a sweet liquid called nectar. " +
			"They carry the nectar back to the hive in a special stomach. " +
			"Inside the hive, worker bees pass the nectar to one another and fan it with their wings. " +
			"The fanning dries the nectar until it becomes thick honey. " +
			"The bees store the honey in wax cells so the colony has food during the winter.",
		Questions: []PassageQuestion{
			{Stem: "What do bees collect from flowers?", Choices: []string{"Nectar", "Wax", "Water", "Seeds"}, Correct: "Nectar", Skill: "detail"},
			{Stem: "Where do bees store honey?", Choices: []string{"In wax cells", "Under rocks", "In flowers", "In tree roots"}, Correct: "In wax cells", Skill: "detail"},
			{Stem: "Why do the bees fan the nectar?", Choices: []string{"To dry it", "To cool the queen", "To make it sweeter", "To call other bees"}, Correct: "To dry it", Skill: "cause-effect"},
			{Stem: "What is the main idea of the passage?", Choices: []string{"Bees turn nectar into honey", "Bees sting people", "Flowers grow in spring", "Winter is cold"}, Correct: "Bees turn nectar into honey", Skill: "main-idea"},
			{Stem: "Why is stored honey important to the colony?", Choices: []string{"It feeds them when flowers are gone", "It keeps the hive warm", "It scares away bears", "It helps bees fly faster"}, Correct: "It feeds them when flowers are gone", Skill: "inference"},
		},
	},
	{
		ID: "e-lit-garden-contest", GradeMin: 3, GradeMax: 5, Topic: TopicLiterary,
		Title: "The Garden Contest",
		Text: "Every spring, Maple Street held a garden contest. This year Priya planted sunflower seeds in neat rows. " +
			"For weeks nothing happened, and her neighbor Mr. Ortiz teased that she had planted pebbles. " +
			"Priya kept watering every evening, even when her friends went to play. " +
			"By July the sunflowers towered over the fence, their faces following the sun. " +
			"Priya did not win first prize, but Mr. Ortiz asked her to help plant his garden next year.",
		Questions: []PassageQuestion{
			{Stem: "What did Priya plant?", Choices: []string{"Sunflower seeds", "Tomato plants", "Rose bushes", "Pumpkin seeds"}, Correct: "Sunflower seeds", Skill: "detail"},
			{Stem: "What did Mr. Ortiz say at first?", Choices: []string{"That she planted pebbles", "That she would win", "That sunflowers are ugly", "That she should stop"}, Correct: "That she planted pebbles", Skill: "detail"},
			{Stem: "In the passage, the word \"towered\" means", Choices: []string{"Stood very tall", "Fell over", "Turned brown", "Grew slowly"}, Correct: "Stood very tall", Skill: "vocab-in-context"},
			{Stem: "Which word best describes Priya?", Choices: []string{"Patient", "Lazy", "Careless", "Boastful"}, Correct: "Patient", Skill: "character"},
			{Stem: "What is the theme of the story?", Choices: []string{"Hard work earns respect", "Winning is everything", "Neighbors are unkind", "Gardens are easy"}, Correct: "Hard work earns respect", Skill: "theme"},
		},
	},
	{
		ID: "e-inf-leaves", GradeMin: 3, GradeMax: 5, Topic: TopicInformational,
		Title: "Why Leaves Change Color",
		Text: "Leaves are green because they contain chlorophyll, which plants use to make food from sunlight. " +
			"Leaves also hold yellow and orange pigments, but the green hides them for most of the year. " +
			"In autumn, days grow shorter and trees stop making chlorophyll. " +
			"As the green fades, the hidden colors appear. Some trees also make red pigment in the fall. " +
			"Finally the leaves drop, and the tree rests until spring.",
		Questions: []PassageQuestion{
			{Stem: "What makes leaves green?", Choices: []string{"Chlorophyll", "Rain", "Soil", "Bark"}, Correct: "Chlorophyll", Skill: "detail"},
			{Stem: "In which season do leaves change color?", Choices: []string{"Autumn", "Spring", "Summer", "Every season"}, Correct: "Autumn", Skill: "detail"},
			{Stem: "Why do yellow colors appear in autumn?", Choices: []string{"The green fades away", "Trees paint them", "Rain washes them", "The sun turns them yellow"}, Correct: "The green fades away", Skill: "cause-effect"},
			{Stem: "How is the passage organized?", Choices: []string{"Cause and effect", "A list of tree names", "A story about a boy", "A comparison of two cities"}, Correct: "Cause and effect", Skill: "text-structure"},
			{Stem: "What can you infer about the yellow pigment?", Choices: []string{"It was there all along", "Trees make it only in fall", "It comes from the soil", "It is harmful to trees"}, Correct: "It was there all along", Skill: "inference"},
		},
	},
	{
		ID: "e-lit-fair-ticket", GradeMin: 4, GradeMax: 6, Topic: TopicLiterary,
		Title: "The Last Ticket",
		Text: "Jonah had saved his allowance for months to buy a ticket to the county fair. " +
			"At the booth, he counted his coins twice. A small girl behind him was crying because she had lost her money. " +
			"Jonah looked at the Ferris wheel glittering in the dusk, then at the girl's trembling chin. " +
			"He pressed his coins into her hand and walked home slowly. " +
			"The next morning his grandmother left two fair tickets on his pillow with a note: \"Kindness is never wasted.\"",
		Questions: []PassageQuestion{
			{Stem: "What did Jonah save money for?", Choices: []string{"A fair ticket", "A new bike", "A video game", "A birthday gift"}, Correct: "A fair ticket", Skill: "detail"},
			{Stem: "Why was the girl crying?", Choices: []string{"She lost her money", "She was lost", "She fell down", "The fair was closed"}, Correct: "She lost her money", Skill: "detail"},
			{Stem: "The word \"glittering\" suggests the Ferris wheel was", Choices: []string{"Sparkling with lights", "Broken", "Moving slowly", "Covered in dust"}, Correct: "Sparkling with lights", Skill: "vocab-in-context"},
			{Stem: "Why did Jonah walk home slowly?", Choices: []string{"He was sad to give up the fair", "He was tired from riding", "He was lost", "He was carrying prizes"}, Correct: "He was sad to give up the fair", Skill: "inference"},
			{Stem: "How does the grandmother's note connect to the theme?", Choices: []string{"It shows generosity is rewarded", "It warns against spending money", "It explains how fairs work", "It shows Jonah was wrong"}, Correct: "It shows generosity is rewarded", Skill: "theme"},
		},
	},
	{
		ID: "e-inf-water-cycle", GradeMin: 4, GradeMax: 6, Topic: TopicInformational,
		Title: "The Water Cycle",
		Text: "Earth's water is always moving. The sun heats oceans and lakes, and water evaporates into vapor. " +
			"As the vapor rises, it cools and condenses into tiny droplets that form clouds. " +
			"When the droplets join and grow heavy, they fall as precipitation: rain, snow, sleet or hail. " +
			"The water collects in rivers, lakes and underground, and the cycle begins again. " +
			"Because of this cycle, the water you drink today may once have fallen on a dinosaur.",
		Questions: []PassageQuestion{
			{Stem: "What heats the water in oceans and lakes?", Choices: []string{"The sun", "The wind", "Volcanoes", "The moon"}, Correct: "The sun", Skill: "detail"},
			{Stem: "What do tiny droplets form?", Choices: []string{"Clouds", "Rivers", "Mountains", "Ice caps"}, Correct: "Clouds", Skill: "detail"},
			{Stem: "In the passage, \"condenses\" means", Choices: []string{"Changes from gas to liquid", "Heats up quickly", "Falls to the ground", "Turns into salt"}, Correct: "Changes from gas to liquid", Skill: "vocab-in-context"},
			{Stem: "What is the main idea of the passage?", Choices: []string{"Water moves in a continuous cycle", "Clouds are made of cotton", "Dinosaurs drank rain", "Snow is colder than rain"}, Correct: "Water moves in a continuous cycle", Skill: "main-idea"},
			{Stem: "Why does the author mention a dinosaur?", Choices: []string{"To show water is reused over time", "To describe dinosaur diets", "To explain how fossils form", "To prove dinosaurs made rain"}, Correct: "To show water is reused over time", Skill: "author-purpose"},
		},
	},
	{
		ID: "e-lit-first-solo", GradeMin: 5, GradeMax: 8, Topic: TopicLiterary,
		Title: "Mara's First Solo",
		Text: "Mara's hands were slick on the violin's neck as the auditorium lights dimmed. " +
			"For months she had practiced the piece until her fingers ached, yet now every note seemed to have fled her memory. " +
			"She found her father in the third row; he tapped two fingers against his heart, the signal they had shared since she was small. " +
			"Mara drew the bow, and the first trembling note steadied into a clear, silver line. " +
			"When the last chord faded, the silence lasted one heartbeat before the applause arrived like rain.",
		Questions: []PassageQuestion{
			{Stem: "What instrument does Mara play?", Choices: []string{"Violin", "Piano", "Flute", "Drums"}, Correct: "Violin", Skill: "detail"},
			{Stem: "Where was Mara's father sitting?", Choices: []string{"In the third row", "On the stage", "At the back door", "In the first row"}, Correct: "In the third row", Skill: "detail"},
			{Stem: "Why were Mara's hands slick?", Choices: []string{"She was nervous", "It was raining", "She had been swimming", "The violin was wet"}, Correct: "She was nervous", Skill: "inference"},
			{Stem: "The phrase \"applause arrived like rain\" is an example of", Choices: []string{"A simile", "A metaphor without comparison", "Alliteration", "Onomatopoeia"}, Correct: "A simile", Skill: "figurative-language"},
			{Stem: "What does the father's signal most likely mean?", Choices: []string{"Encouragement and love", "Stop playing", "Play faster", "It is time to leave"}, Correct: "Encouragement and love", Skill: "inference"},
		},
	},
	{
		ID: "e-inf-printing-press", GradeMin: 6, GradeMax: 8, Topic: TopicInformational,
		Title: "The Printing Press",
		Text: "Before the 1450s, most books in Europe were copied by hand, a process that could take a scribe months. " +
			"Johannes Gutenberg combined movable metal type, oil-based ink and a modified wine press into a machine that could print pages rapidly. " +
			"Within fifty years, millions of books circulated across Europe. " +
			"Cheaper books meant more people learned to read, and ideas in science and religion spread faster than authorities could control them. " +
			"Historians often rank the press among the most influential inventions in history.",
		Questions: []PassageQuestion{
			{Stem: "Who developed the printing press described in the passage?", Choices: []string{"Johannes Gutenberg", "Isaac Newton", "Leonardo da Vinci", "Galileo Galilei"}, Correct: "Johannes Gutenberg", Skill: "detail"},
			{Stem: "How were most books made before the press?", Choices: []string{"Copied by hand", "Printed by machines", "Carved in stone", "Typed on typewriters"}, Correct: "Copied by hand", Skill: "detail"},
			{Stem: "The word \"circulated\" most nearly means", Choices: []string{"Spread around", "Burned", "Hidden", "Translated"}, Correct: "Spread around", Skill: "vocab-in-context"},
			{Stem: "Which statement best summarizes the passage?", Choices: []string{"The press made books cheap and spread ideas widely", "Scribes preferred wine presses", "Books were banned in the 1450s", "Metal type was invented in 2000"}, Correct: "The press made books cheap and spread ideas widely", Skill: "summary"},
			{Stem: "Why might authorities have struggled after the press appeared?", Choices: []string{"Ideas spread beyond their control", "They ran out of ink", "Nobody could read", "Books became too expensive"}, Correct: "Ideas spread beyond their control", Skill: "inference"},
		},
	},
	{
		ID: "e-lit-lighthouse-log", GradeMin: 7, GradeMax: 8, Topic: TopicLiterary,
		Title: "The Lighthouse Keeper's Log",
		Text: "November 3. The storm has raged for two days, and the supply boat is a week overdue. " +
			"I ration the lamp oil as carefully as my own bread, for a dark tower is worse than no tower at all. " +
			"Tonight I glimpsed a fishing boat wallowing near the reef; I trimmed the wick and turned the lens until my arms burned. " +
			"By dawn the boat had limped into the cove. No one will know my name, and that is as it should be. " +
			"A keeper's work is measured only by the wrecks that never happen.",
		Questions: []PassageQuestion{
			{Stem: "What form is this text written in?", Choices: []string{"A journal entry", "A news article", "A poem", "A letter to the editor"}, Correct: "A journal entry", Skill: "genre"},
			{Stem: "What is the keeper rationing?", Choices: []string{"Lamp oil", "Fresh water", "Rope", "Firewood"}, Correct: "Lamp oil", Skill: "detail"},
			{Stem: "\"Wallowing\" suggests the fishing boat was", Choices: []string{"Rolling helplessly in the waves", "Racing to shore", "Anchored safely", "Sinking instantly"}, Correct: "Rolling helplessly in the waves", Skill: "vocab-in-context"},
			{Stem: "Why is \"a dark tower worse than no tower at all\"?", Choices: []string{"Sailors would trust a light that fails them", "Dark towers are hard to build", "Storms knock down dark towers", "Keepers cannot sleep in the dark"}, Correct: "Sailors would trust a light that fails them", Skill: "inference"},
			{Stem: "What does the final sentence reveal about the keeper's view of success?", Choices: []string{"Success is invisible disasters avoided", "Success means becoming famous", "Success is counting ships", "Success depends on the weather"}, Correct: "Success is invisible disasters avoided", Skill: "theme"},
		},
	},
	{
		ID: "e-inf-coral-reefs", GradeMin: 7, GradeMax: 8, Topic: TopicInformational,
		Title: "Coral Reefs Under Pressure",
		Text: "Coral reefs cover less than one percent of the ocean floor, yet they shelter roughly a quarter of all marine species. " +
			"Corals rely on tiny algae living in their tissues for food and color. " +
			"When water grows too warm, corals expel the algae and turn white, a process called bleaching. " +
			"Bleached corals can recover if temperatures fall quickly, but prolonged heat leaves them starving. " +
			"Scientists are now breeding heat-tolerant corals, though most agree that limiting ocean warming remains essential.",
		Questions: []PassageQuestion{
			{Stem: "About what share of marine species do reefs shelter?", Choices: []string{"A quarter", "Half", "One percent", "Almost all"}, Correct: "A quarter", Skill: "detail"},
			{Stem: "What gives corals their color?", Choices: []string{"Algae in their tissues", "Sunlight on sand", "Minerals in seawater", "Fish living nearby"}, Correct: "Algae in their tissues", Skill: "detail"},
			{Stem: "What causes coral bleaching?", Choices: []string{"Water that is too warm", "Too many fish", "Strong tides", "Cold winters"}, Correct: "Water that is too warm", Skill: "cause-effect"},
			{Stem: "Which evidence best supports the claim that reefs matter?", Choices: []string{"They shelter a quarter of marine species", "They cover one percent of the floor", "They turn white", "Scientists breed them"}, Correct: "They shelter a quarter of marine species", Skill: "evidence"},
			{Stem: "What can be inferred about breeding heat-tolerant corals?", Choices: []string{"It helps but is not a full solution", "It has already saved every reef", "It causes bleaching", "Scientists have rejected it"}, Correct: "It helps but is not a full solution", Skill: "inference"},
		},
	},
}

// languageItems are standalone language-conventions questions with declared
// tiers.
var languageItems = []Item{
	lang("e-lang-there-their", 2, 4, TierCore, "homophones", "Choose the correct word: ___ dog is very friendly.", "Their", "There", "They're", "Thier"),
	lang("e-lang-plural-boxes", 2, 3, TierCore, "grammar", "What is the plural of \"box\"?", "boxes", "boxs", "box's", "boxies"),
	lang("e-lang-capital-name", 2, 3, TierOn, "capitalization", "Which sentence is written correctly?", "Maya lives in Ohio.", "maya lives in Ohio.", "Maya lives in ohio.", "maya lives in ohio."),
	lang("e-lang-question-mark", 2, 4, TierOn, "punctuation", "Which sentence needs a question mark?", "Where is my hat", "I like my hat", "My hat is red", "Put on your hat"),
	lang("e-lang-past-run", 2, 4, TierStretch, "grammar", "Yesterday, Ben ___ to the store.", "ran", "runned", "runs", "running"),
	lang("e-lang-antonym-huge", 2, 4, TierStretch, "vocab", "Which word means the opposite of \"huge\"?", "tiny", "giant", "tall", "wide"),
	lang("e-lang-to-too-two", 3, 5, TierCore, "homophones", "I want to come ___.", "too", "to", "two", "toe"),
	lang("e-lang-comma-list", 3, 5, TierOn, "punctuation", "Which sentence uses commas correctly?", "We bought eggs, milk, and bread.", "We bought, eggs milk and bread.", "We, bought eggs milk, and bread.", "We bought eggs milk, and, bread."),
	lang("e-lang-adverb", 3, 5, TierOn, "grammar", "Which word is an adverb in \"The cat moved quietly\"?", "quietly", "cat", "moved", "The"),
	lang("e-lang-prefix-re", 3, 6, TierStretch, "vocab", "What does \"rebuild\" mean?", "Build again", "Build badly", "Not build", "Build before"),
	lang("e-lang-its-its", 4, 6, TierCore, "homophones", "The bird flapped ___ wings.", "its", "it's", "its'", "it"),
	lang("e-lang-subject-verb", 4, 6, TierCore, "grammar", "The group of students ___ ready.", "is", "are", "were", "be"),
	lang("e-lang-quotation", 4, 7, TierOn, "punctuation", "Which sentence is punctuated correctly?", "\"Let's go,\" said Ana.", "\"Let's go\" said Ana.", "Let's go, \"said Ana.\"", "\"Let's go said,\" Ana."),
	lang("e-lang-synonym-brave", 4, 6, TierOn, "vocab", "Which word is a synonym for \"brave\"?", "courageous", "fearful", "quiet", "clumsy"),
	lang("e-lang-root-bio", 5, 8, TierStretch, "vocab", "The root \"bio\" in \"biology\" means", "life", "earth", "water", "star"),
	lang("e-lang-affect-effect", 5, 8, TierCore, "usage", "The weather will ___ our plans.", "affect", "effect", "afect", "affection"),
	lang("e-lang-semicolon", 6, 8, TierOn, "punctuation", "Which sentence uses a semicolon correctly?", "I was tired; I went to bed early.", "I was; tired I went to bed early.", "I was tired; and went to bed.", "I; was tired so I went to bed."),
	lang("e-lang-pronoun-case", 5, 7, TierOn, "grammar", "Which sentence is correct?", "Sam and I went to the game.", "Me and Sam went to the game.", "Sam and me went to the game.", "Him and Sam went to the game."),
	lang("e-lang-connotation", 6, 8, TierStretch, "vocab", "Which word has the most negative connotation?", "stubborn", "determined", "persistent", "steady"),
	lang("e-lang-dangling", 7, 8, TierStretch, "grammar", "Which sentence avoids a dangling modifier?", "Walking to school, I saw a rainbow.", "Walking to school, a rainbow appeared.", "Walking to school, the rainbow was seen.", "Walking to school, the sky had a rainbow."),
	lang("e-lang-parallel", 7, 8, TierOn, "grammar", "Which sentence uses parallel structure?", "She likes hiking, swimming, and biking.", "She likes hiking, to swim, and biking.", "She likes to hike, swimming, and bikes.", "She likes hike, swim, and biking."),
	lang("e-lang-colon-list", 7, 8, TierCore, "punctuation", "Which sentence uses a colon correctly?", "Bring three things: a pen, a notebook, and a snack.", "Bring: a pen, a notebook, and a snack.", "Bring three: things a pen, a notebook.", "Bring three things a pen: a notebook."),
	lang("e-lang-whose-whos", 6, 8, TierCore, "homophones", "___ backpack is on the bus?", "Whose", "Who's", "Whos", "Who"),
	lang("e-lang-verb-mood", 8, 8, TierStretch, "grammar", "Which sentence is in the subjunctive mood?", "If I were taller, I would play center.", "I am taller than my brother.", "Be taller next year.", "Am I taller now?"),
}

func lang(id string, gmin, gmax int, tier Tier, skill, stem, correct string, wrongs ...string) Item {
	choices := rotate(append([]string{correct}, wrongs...), len(id))
	return Item{
		ID:       id,
		GradeMin: gmin,
		GradeMax: gmax,
		Topic:    TopicLanguage,
		Tier:     tier,
		Skill:    skill,
		Stem:     stem,
		Choices:  choices,
		Correct:  correct,
	}
}

// rotate returns a copy of xs shifted left by k positions. Built-in content
// lists the correct answer first; rotating by a per-item offset spreads it.
func rotate(xs []string, k int) []string {
	out := make([]string, 0, len(xs))
	if len(xs) == 0 {
		return out
	}
	k %= len(xs)
	out = append(out, xs[k:]...)
	return append(out, xs[:k]...)
}

// mixedPassages returns the reading passages with each question's choices
// rotated away from correct-first order.
func mixedPassages() []Passage {
	out := make([]Passage, len(readingPassages))
	for i, p := range readingPassages {
		qs := make([]PassageQuestion, len(p.Questions))
		for j, q := range p.Questions {
			q.Choices = rotate(q.Choices, len(p.ID)+j)
			qs[j] = q
		}
		p.Questions = qs
		out[i] = p
	}
	return out
}
