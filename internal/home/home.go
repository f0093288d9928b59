package home

// Highlight is one card in the highlights section.
type Highlight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Alt         string `json:"alt"`
	Link        string `json:"link,omitempty"`
}

// Content is the landing page payload.
type Content struct {
	Title      string      `json:"title"`
	Intro      string      `json:"intro"`
	CTALabel   string      `json:"ctaLabel"`
	CTALink    string      `json:"ctaLink"`
	About      string      `json:"about"`
	AboutLink  string      `json:"aboutLink"`
	Highlights []Highlight `json:"highlights"`
}

// DefaultContent is the page shipped with the service.
func DefaultContent() Content {
	return Content{
		Title:     "Welcome to the Zoo!",
		Intro:     "Explore the wonders of wildlife, learn about fascinating animals, and enjoy a fun-filled day with family and friends.",
		CTALabel:  "Get Tickets Now",
		CTALink:   "/tickets",
		About:     "Our zoo is home to a wide variety of animals from around the world. We are committed to animal conservation and providing a safe and enriching environment for all our wildlife.",
		AboutLink: "/exhibits",
		Highlights: []Highlight{
			{
				Title:       "Behind-the-Scenes Tours",
				Description: "Get an exclusive look at how our zookeepers care for the animals.",
				Image:       "https://th.bing.com/th/id/R.21e5eb81b9d866c764b49bc3112c4d8f?rik=sQi9JZdPn0lOug&riu=http%3a%2f%2f2.bp.blogspot.com%2f-gvTrTueZaac%2fU1JYAtFP9jI%2fAAAAAAAABLA%2f6IRlSIrcsH4%2fs1600%2f12.00pm%2b-%2bCopy.JPG&ehk=Km%2b6LUQjyK0XmlkunLbMqZ8aB0wQVn7NowfY0OlebpM%3d&risl=&pid=ImgRaw&r=0",
				Alt:         "Behind the scenes",
			},
			{
				Title:       "Animal Feeding Times",
				Description: "Join us during feeding sessions and watch your favorite animals eat!",
				Image:       "https://scz.org/wp-content/uploads/2018/04/giraffe_feeding.jpg",
				Alt:         "Animal feeding times",
			},
			{
				Title:       "Upcoming Events",
				Description: "Check out special events, seasonal activities, and more!",
				Image:       "https://th.bing.com/th/id/OIP.iq0lMV-f1pivf96NQ_FpUQHaE7?rs=1&pid=ImgDetMain",
				Alt:         "Upcoming events",
				Link:        "/events",
			},
		},
	}
}
